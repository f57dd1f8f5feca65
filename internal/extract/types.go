package extract

// Sentinel field values. These are deliberate signals distinct from an absent
// field and stay bit-compatible with what downstream consumers already parse.
const (
	// RatioUnparsable marks a roster row whose ratio cell was located but
	// could not be read as a number.
	RatioUnparsable = "-"
	// NameUnrecognized marks a ratio found by the pattern fallback whose
	// holder name could not be recovered.
	NameUnrecognized = "주주명 인식 불가"
)

// BusinessRegistrationRecord holds the fields recovered from a
// business-registration certificate. Absent fields are omitted, meaning
// "searched and not found".
type BusinessRegistrationRecord struct {
	CompanyName       string `json:"companyName,omitempty"`
	OpeningDateRaw    string `json:"openingDateRaw,omitempty"`
	OpeningDate       string `json:"openingDate,omitempty"`
	HeadOfficeAddress string `json:"headOfficeAddress,omitempty"`
}

// Shareholder is one roster row. Rows keep document order and are not
// deduplicated; a holder may legitimately repeat across lot entries.
type Shareholder struct {
	Name  string `json:"name"`
	Ratio string `json:"ratio"`
}

// StatementType classifies one page of a financial-statement bundle. The
// string values are the Korean labels consumers display as-is.
type StatementType string

const (
	TypeStandardCertificate StatementType = "표준재무제표증명"
	TypeBalanceSheet        StatementType = "표준재무상태표"
	TypeIncomeStatement     StatementType = "표준손익계산서"
	TypeSchedule            StatementType = "부속명세서"
	TypeUnclassifiable      StatementType = "분류 불가"
)

// StatementPage is the classification of a single page. Revenue is only ever
// set when Type is TypeIncomeStatement.
type StatementPage struct {
	Page    int           `json:"page"`
	Type    StatementType `json:"type"`
	Revenue string        `json:"revenue,omitempty"`
}

// StatementResult is the per-page classification of a bundle, sorted by
// ascending page number. Revenue mirrors the income-statement page's revenue.
type StatementResult struct {
	Pages   []StatementPage `json:"pages"`
	Revenue string          `json:"revenue,omitempty"`
}
