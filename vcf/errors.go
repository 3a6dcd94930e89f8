package vcf

import "errors"

var (
	// ErrNoHeader is returned when the input contains no #CHROM header line.
	ErrNoHeader = errors.New("no #CHROM header found in VCF input")

	// ErrInsufficientColumns is returned when the tabular layout has fewer
	// than the eight mandatory columns.
	ErrInsufficientColumns = errors.New("VCF input has insufficient columns")

	// ErrRaggedTable is returned when data rows disagree on column count.
	ErrRaggedTable = errors.New("VCF rows have inconsistent column counts")
)
