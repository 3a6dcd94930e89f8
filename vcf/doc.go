// Package vcf extracts variant records from loosely formatted VCF text.
//
// Extraction runs a three-tier fallback chain:
//   - a comprehensive columnar parse covering FORMAT and per-sample genotype
//     columns,
//   - a basic columnar parse of the eight mandatory columns,
//   - a line-by-line parse that salvages whatever rows still split cleanly.
//
// A tier falls through to the next only when applying it fails with an
// error. A tier that completes with zero records is a valid final result;
// an empty file is reported as empty rather than masked by a later tier.
// Individual malformed rows are skipped with a warning and never abort
// extraction. The only fatal condition is input with no header marker.
package vcf
