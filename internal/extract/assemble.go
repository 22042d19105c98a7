package extract

import "time"

// MinImportantFields is how many of the headline fields must be present
// before an extraction is considered usable enough to persist.
const MinImportantFields = 2

// Assembler runs every section extractor over one workbook and merges
// the fragments into a PaymentRecord. Sections are independent: one
// section failing, panicking or missing its sheet leaves only its own
// defaults behind and never aborts the rest.
type Assembler struct {
	diag Diag
	now  func() time.Time
}

type AssemblerOption func(*Assembler)

// WithDiag routes extractor diagnostics to the given sink.
func WithDiag(d Diag) AssemblerOption {
	return func(a *Assembler) { a.diag = d }
}

// WithClock pins the clock used for month/year inference. Tests use this.
func WithClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) { a.now = now }
}

func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{diag: NopDiag(), now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble builds the record. It always returns a record; the boolean
// reports whether enough important fields were found for the extraction
// to count as a success (see MinImportantFields).
func (a *Assembler) Assemble(wb *Workbook) (*PaymentRecord, bool) {
	rec := &PaymentRecord{HighValueItems: []HighValueItem{}}

	a.section("identity", func() {
		id := ExtractIdentity(wb, a.now(), a.diag)
		rec.ContractorCode = id.ContractorCode
		rec.Month = id.Month
		rec.Year = id.Year
		rec.NetPayment = id.NetPayment
	})
	if rec.Year == 0 {
		rec.Year = a.now().Year()
	}

	a.section("summary", func() {
		sum := ExtractSummary(wb, a.diag)
		rec.ItemCounts = sum.ItemCounts
		rec.Financials = sum.Financials
		rec.AdvancePayments = sum.AdvancePayments
		rec.ServiceCosts = sum.ServiceCosts
	})

	a.section("regional", func() {
		rec.RegionalPayments = ExtractRegionalPayments(wb, a.diag)
	})

	a.section("pfs", func() {
		rec.PFSDetails = ExtractPFSDetails(wb, a.diag)
	})

	a.section("high value", func() {
		rec.HighValueItems = ExtractHighValueItems(wb, a.diag)
	})
	if len(rec.HighValueItems) == 0 {
		// recovery pass with looser header matching; allowed to fail
		a.section("high value permissive", func() {
			rec.HighValueItems = ExtractHighValueItemsPermissive(wb, a.diag)
		})
	}
	if rec.HighValueItems == nil {
		rec.HighValueItems = []HighValueItem{}
	}

	ok := countImportantFields(rec) >= MinImportantFields
	if !ok {
		a.diag.Warnf("assembled record has too few recognisable fields (contractor=%q month=%q)",
			rec.ContractorCode, rec.Month)
	}
	return rec, ok
}

// section runs one extractor with panic containment, so a malformed sheet
// can never take the whole upload down with it.
func (a *Assembler) section(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			a.diag.Warnf("%s extractor panicked: %v", name, r)
		}
	}()
	fn()
}

func countImportantFields(rec *PaymentRecord) int {
	n := 0
	if rec.ContractorCode != "" {
		n++
	}
	if rec.Month != "" {
		n++
	}
	if rec.NetPayment != 0 {
		n++
	}
	if rec.ItemCounts.Total > 0 {
		n++
	}
	if rec.Financials.GrossIngredientCost != 0 {
		n++
	}
	return n
}
