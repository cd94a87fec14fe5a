// Package taxonomy defines the ordered document category table and the
// keyword classifier built on it.
//
// Match priority is the insertion order of the table: the first category
// with any keyword contained in the text wins. Matching is plain substring
// containment, not word matching; a short keyword may match inside an
// unrelated word, and that behavior is part of the category definitions.
package taxonomy

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category names a document category folder.
type Category string

// Category folders. Others is the classifier's fallback; ErrorFiles is
// reserved for documents that failed decoding or processing and is never
// produced by classification.
const (
	Invoices                      Category = "invoices"
	IDs                           Category = "ids"
	Cheque                        Category = "cheque"
	SignatureDeclaration          Category = "signature_declaration"
	ResidenceCertificate          Category = "residence_certificate"
	TradeRegistryGazette          Category = "trade_registry_gazette"
	DriverLicense                 Category = "driver_license"
	PopulationRegister            Category = "population_register"
	TaxPlate                      Category = "tax_plate"
	Contracts                     Category = "contracts"
	KVKKExplicitConsent           Category = "kvkk_explicit_consent"
	DigitalABFCommitment          Category = "digital_abf_commitment"
	PowerOfAttorney               Category = "power_of_attorney"
	ABF                           Category = "abf"
	ChequeCustomerScreening       Category = "cheque_customer_screening"
	PromissoryNote                Category = "promissory_note"
	OffsetAndPaymentOrder         Category = "offset_and_payment_order"
	UnprocessedReturnPaymentOrder Category = "unprocessed_return_payment_order"
	Others                        Category = "others"
	ErrorFiles                    Category = "error_files"
	FactoringAgreement            Category = "factoring_agreement"
	ActivityCertificate           Category = "activity_certificate"
	IndependentAuditCertificate   Category = "independent_audit_certificate"
)

// Folders lists every category folder created under the upload root,
// including the fallback and error folders.
func Folders() []Category {
	return []Category{
		Invoices, IDs, Cheque, SignatureDeclaration, ResidenceCertificate,
		TradeRegistryGazette, DriverLicense, PopulationRegister, TaxPlate,
		Contracts, KVKKExplicitConsent, DigitalABFCommitment, PowerOfAttorney,
		ABF, ChequeCustomerScreening, PromissoryNote, OffsetAndPaymentOrder,
		UnprocessedReturnPaymentOrder, Others, ErrorFiles, FactoringAgreement,
		ActivityCertificate, IndependentAuditCertificate,
	}
}

// Entry pairs a category with its diagnostic keywords.
type Entry struct {
	Category Category
	Keywords []string
}

// Classifier matches text against an immutable ordered category table.
type Classifier struct {
	entries []Entry
}

// New builds a classifier over the given table. The slice is copied; the
// order given is the match priority and is preserved exactly.
func New(entries []Entry) *Classifier {
	copied := make([]Entry, len(entries))
	for i, e := range entries {
		copied[i] = Entry{
			Category: e.Category,
			Keywords: append([]string(nil), e.Keywords...),
		}
	}
	return &Classifier{entries: copied}
}

// NewDefault builds a classifier over the standard Turkish document table.
func NewDefault() *Classifier {
	return New(DefaultEntries())
}

// Classify lowercases text with Turkish casing rules and returns the first
// category whose keywords contain a substring of the text, or Others.
func (c *Classifier) Classify(text string) Category {
	lowered := cases.Lower(language.Turkish).String(text)
	for _, e := range c.entries {
		for _, kw := range e.Keywords {
			if strings.Contains(lowered, kw) {
				return e.Category
			}
		}
	}
	return Others
}

// Keywords returns the keyword list configured for a category, or nil.
func (c *Classifier) Keywords(cat Category) []string {
	for _, e := range c.entries {
		if e.Category == cat {
			return append([]string(nil), e.Keywords...)
		}
	}
	return nil
}

// DefaultEntries returns the standard category table. The keyword spellings
// include common Tesseract misreads (e.g. "çak" for "çek", "vergı" for
// "vergi"); do not normalize them.
func DefaultEntries() []Entry {
	return []Entry{
		{TradeRegistryGazette, []string{
			"türkiye ticaret sicili gazetesi", "ticaret sicili müdürlüğü",
		}},
		{DigitalABFCommitment, []string{
			"dijital abf taahhütnamesi", "taahhütte bulunan",
			"tarafınızla akdetmiş olduğum", "sms ile", "sms",
		}},
		{KVKKExplicitConsent, []string{
			"6698 sayılı", "kişisel verilerin korunması kanunu",
			"açık rıza metni", "veri sorumlusu", "aydınlatma metni",
			"rıza gösteriyorum",
		}},
		{FactoringAgreement, []string{
			"faktoring hizmet sözleşmesi", "alacakların devri", "temlik",
			"finansman hizmeti", "faktör şirketi",
		}},
		{PowerOfAttorney, []string{
			"vekaletname", "vekil tayin ettim",
			"adıma işlem yapmaya yetkilidir", "noter tasdikli vekaletname",
			"işbu vekaletname ile",
		}},
		{SignatureDeclaration, []string{
			"imza beyannamesi", "imzaya yetkili kişi",
			"ticaret sicil müdürlüğü", "imza örneği",
		}},
		{ABF, []string{
			"abf formu", "abf başvuru", "abf numarası", "abf",
			"alacak bildirimi formu",
		}},
		{IDs, []string{
			"t.c. kimlik no", "t.c. kimlik no.", "nüfus cüzdanı",
			"kimlik kartı", "türkiye cumhuriyeti", "uyruğu", "gender",
			"nationality", "identity card",
		}},
		{Invoices, []string{
			"e-fatura", "ettn", "fatura no", "fatura tarihi", "fatura tipi",
			"mal hizmet toplam tutarı", "fatura", "invoice", "ınvoıce",
			"taşıma irsaliye", "taşıma ırsaliye", "müşteri v.d.",
			"müşteri v.d.no.", "irsaliye",
		}},
		{Cheque, []string{
			"çek", "keşideci", "keşide yeri", "çek seri no", "çak", "çak no",
			"tacir", "basım tarihi", "keşide", "bu çek", "çek karşılığında",
			"bu çek karşılığında", "findeks", "çok seri no", "çok sori no",
			"mersis no", "morsis no",
		}},
		{PromissoryNote, []string{
			"senet", "emre yazılı senet", "borçlunun adı", "ödenecek meblağ",
			"vade tarihi", "düzenlenme yeri",
		}},
		{Contracts, []string{
			"taraflar arasında akdedilmiştir", "işbu sözleşme",
			"sözleşmenin konusu", "hak ve yükümlülükler",
			"tarafların mutabakatı", "kefalet", "faktoring sözleşmesi",
			"sözleşmesi",
		}},
		{ResidenceCertificate, []string{
			"yerleşim yeri belgesi", "yerleşim yeri", "ikametgah belgesi",
			"adres kayıt sistemi",
			"nüfus ve vatandaşlık işleri genel müdürlüğü",
		}},
		{DriverLicense, []string{
			"sürücü belgesi", "driving licence", "veriliş tarihi", "sınıf",
			"ehliyet no",
		}},
		{PopulationRegister, []string{
			"nüfus kayıt örneği", "nüfus kayıt", "nüfus kayit örneği",
			"aile sıra no", "cilt no", "mahallesi", "nüfus müdürlüğü",
		}},
		{TaxPlate, []string{
			"vergi levhası", "vergi kimlik no", "vergı levhası",
			"faaliyet kodu", "gelir idaresi", "beyan edilen matrah",
			"vergi levhası", "gelir idaresi", "levhası", "beyan olunan matrah",
			"matrah", "vergi türü", "vergi kimlik", "tahakkuk eden vergi",
			"intvd.gib.gov.tr",
		}},
		{OffsetAndPaymentOrder, []string{
			"ödeme emri", "mahsup talebi", "vergi dairesi müdürlüğü",
			"6183 sayılı kanun",
		}},
		{UnprocessedReturnPaymentOrder, []string{
			"işlenmemiş iade", "ödenmemiş ödeme emri", "vergi iadesi talebi",
			"beyanname bilgileri",
		}},
		{ActivityCertificate, []string{
			"faaliyet sicili", "ticaret sicil tasdiknamesi", "ticaret sicil",
			"faaliyet belgesi", "commercial activity", "nace kodu",
			"nace code", "faaliyet bilgileri", "faaliyet kodu",
			"sicil kayıt sureti", "ticaret", "sicil kayıt", "sicil",
		}},
		{IndependentAuditCertificate, []string{
			"bağımsız denetime tabi", "denetime tabi",
			"bağımsız denetim yükümlülüğü", "bağımsız denetim", "smmm", "ymm",
			"mali müşavirlerce",
		}},
	}
}
