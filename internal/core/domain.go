package core

import (
	"strings"
	"time"
)

const (
	CategoryAgua      Category = "Agua"
	CategoryCarro     Category = "Carro"
	CategoryCasa      Category = "Casa"
	CategoryCredito   Category = "Credito"
	CategoryEstudos   Category = "Estudos"
	CategoryFeira     Category = "Feira"
	CategoryFilhos    Category = "Filhos"
	CategoryFarmacia  Category = "Farmacia"
	CategoryIfood     Category = "Ifood"
	CategoryIgreja    Category = "Igreja"
	CategoryInternet  Category = "Internet"
	CategoryLuz       Category = "Luz"
	CategoryMercado   Category = "Mercado"
	CategoryRefeicao  Category = "Refeicao"
	CategoryVestuario Category = "Vestuário"
	CategoryViagem    Category = "Viagem"
	CategoryOutros    Category = "Outros"
)

const (
	PayerMarido Payer = "marido"
	PayerEsposa Payer = "esposa"
)

const (
	PaymentDinheiro PaymentMethod = "Dinheiro"
	PaymentCredito  PaymentMethod = "Crédito"
	PaymentPix      PaymentMethod = "Pix"
	PaymentOutros   PaymentMethod = "Outros"
)

type (
	Category      string
	Payer         string
	PaymentMethod string

	// ExpenseRecord is one line-item purchase, or one installment share of a
	// purchase split across months. Records are immutable after creation;
	// they are only ever added or deleted, never updated in place.
	ExpenseRecord struct {
		ID            string
		Category      Category
		SubCategory   string
		Amount        Money
		Payer         Payer
		PaymentMethod PaymentMethod
		// Date is the month bucket the expense counts toward. It is always
		// set for records created through the ledger; a zero Date only
		// appears on legacy store rows and such rows sort last and are
		// excluded from month filters.
		Date time.Time
	}
)

// Categories lists the fixed expense taxonomy in display order.
var Categories = []Category{
	CategoryAgua, CategoryCarro, CategoryCasa, CategoryCredito,
	CategoryEstudos, CategoryFeira, CategoryFilhos, CategoryFarmacia,
	CategoryIfood, CategoryIgreja, CategoryInternet, CategoryLuz,
	CategoryMercado, CategoryRefeicao, CategoryVestuario, CategoryViagem,
	CategoryOutros,
}

// Payers lists the two household members.
var Payers = []Payer{PayerMarido, PayerEsposa}

// PaymentMethods lists the accepted payment methods.
var PaymentMethods = []PaymentMethod{
	PaymentDinheiro, PaymentCredito, PaymentPix, PaymentOutros,
}

var categoryEmoji = map[Category]string{
	CategoryAgua:      "💧",
	CategoryCarro:     "🚗",
	CategoryCasa:      "🏠",
	CategoryCredito:   "💳",
	CategoryEstudos:   "📕",
	CategoryFeira:     "🥬",
	CategoryFilhos:    "👶",
	CategoryFarmacia:  "💊",
	CategoryIfood:     "🍔",
	CategoryIgreja:    "⛪️",
	CategoryInternet:  "🌐",
	CategoryLuz:       "⚡",
	CategoryMercado:   "🛒",
	CategoryRefeicao:  "🍽️",
	CategoryVestuario: "👕",
	CategoryViagem:    "✈️",
	CategoryOutros:    "🤔",
}

// subCategorySuggestions maps each category to its suggested subcategories.
// This is a lookup table for pickers only; SubCategory itself stays free text.
var subCategorySuggestions = map[Category][]string{
	CategoryCarro:     {"gasolina", "manutencao", "prestacao"},
	CategoryCasa:      {"Eletrodomesticos", "Manutenção", "Móveis", "Reforma"},
	CategoryFilhos:    {"Calçado", "Diversos", "Escola", "Roupa"},
	CategoryIgreja:    {"Cantina", "Dizimo", "Doação"},
	CategoryRefeicao:  {"Almoço", "Café", "Janta", "Lanche"},
	CategoryVestuario: {"Calçado", "Diversos", "Roupa"},
}

func (c Category) Valid() bool {
	_, ok := categoryEmoji[c]
	return ok
}

// Emoji returns the display marker for the category, or a question mark for
// values outside the taxonomy.
func (c Category) Emoji() string {
	if e, ok := categoryEmoji[c]; ok {
		return e
	}
	return "❓"
}

// SubCategorySuggestions returns the suggested subcategories for a category.
// The returned slice is a copy.
func SubCategorySuggestions(c Category) []string {
	return append([]string(nil), subCategorySuggestions[c]...)
}

func (p Payer) Valid() bool {
	return p == PayerMarido || p == PayerEsposa
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentDinheiro, PaymentCredito, PaymentPix, PaymentOutros:
		return true
	}
	return false
}

func (r ExpenseRecord) Validate() error {
	if strings.TrimSpace(string(r.Category)) == "" || !r.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(string(r.Payer)) == "" || !r.Payer.Valid() {
		return ErrInvalidPayer
	}
	if !r.PaymentMethod.Valid() {
		return ErrInvalidPaymentMethod
	}
	return nil
}

// HasDate reports whether the record carries a usable month bucket.
func (r ExpenseRecord) HasDate() bool {
	return !r.Date.IsZero()
}
