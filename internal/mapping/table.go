package mapping

// Kind classifies what a form answer at a given position means.
type Kind int

const (
	KindTermInterest Kind = iota
	KindLinkedInURL
	KindTranscript
	KindCompanyName
	KindSummary
	KindLastName
	KindFirstName
	KindMobile
	KindGraduationYear
	KindReferralSource
	KindEmail
	KindResume
)

// Field is one row of the position table.
type Field struct {
	Position int
	Kind     Kind
	Label    string // summary line label, only for KindSummary
}

// TableVersion changes whenever the form's question layout changes. The
// contract test pins the table so a reordered form fails loudly instead of
// silently mis-mapping applicants.
const TableVersion = 1

// Table maps form layout positions to their semantics. The form gives no
// structural field names, so this ordering is the only way the semantics are
// recovered.
var Table = []Field{
	{Position: 0, Kind: KindTermInterest},
	{Position: 1, Kind: KindLinkedInURL},
	{Position: 2, Kind: KindTranscript},
	{Position: 3, Kind: KindCompanyName},
	{Position: 4, Kind: KindSummary, Label: "Major"},
	{Position: 5, Kind: KindSummary, Label: "Other Information"},
	{Position: 6, Kind: KindLastName},
	{Position: 7, Kind: KindSummary, Label: "Hours"},
	{Position: 8, Kind: KindSummary, Label: "GPA"},
	{Position: 9, Kind: KindFirstName},
	{Position: 10, Kind: KindMobile},
	{Position: 11, Kind: KindGraduationYear},
	{Position: 12, Kind: KindSummary, Label: "Applied before"},
	{Position: 13, Kind: KindReferralSource},
	{Position: 14, Kind: KindEmail},
	{Position: 15, Kind: KindResume},
	{Position: 16, Kind: KindSummary, Label: "Term of Employment"},
}
