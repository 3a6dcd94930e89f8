// Copyright 2025 Variant Lab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package vcf

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/variantlab/genechat/core"
)

const (
	headerMarker = "#CHROM"

	// missingValue is the VCF placeholder for an absent field.
	missingValue = "."

	// unknownGene is used when the INFO field names no gene.
	unknownGene = "Unknown"

	mandatoryColumns = 8
)

// Extract parses VCF text from r into variant records.
// It returns ErrNoHeader if no #CHROM header line is present; individual
// malformed rows are skipped, never fatal.
func Extract(r io.Reader) ([]core.Variant, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading VCF input: %w", err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	headerIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(line, headerMarker) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrNoHeader
	}

	variants, err := extractComprehensive(lines[headerIdx+1:])
	if err == nil {
		return variants, nil
	}
	slog.Warn("comprehensive VCF parse failed, falling back to basic parse", "err", err)

	variants, err = extractBasic(lines[headerIdx+1:])
	if err == nil {
		return variants, nil
	}
	slog.Warn("basic VCF parse failed, falling back to manual parse", "err", err)

	return extractManual(lines), nil
}

// ExtractFile parses the VCF file at path.
func ExtractFile(path string) ([]core.Variant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Extract(f)
}

// extractComprehensive parses a rectangular tab-separated table with the
// eight mandatory columns plus an optional FORMAT column and per-sample
// columns inferred from the total column count.
func extractComprehensive(lines []string) ([]core.Variant, error) {
	rows := dataRows(lines)

	columns := 0
	for _, row := range rows {
		fields := strings.Split(row, "\t")
		if columns == 0 {
			columns = len(fields)
			continue
		}
		if len(fields) != columns {
			return nil, fmt.Errorf("%w: %d vs %d", ErrRaggedTable, len(fields), columns)
		}
	}
	if len(rows) > 0 && columns < mandatoryColumns {
		return nil, fmt.Errorf("%w: %d (need at least %d)", ErrInsufficientColumns, columns, mandatoryColumns)
	}

	sampleNames := sampleColumnNames(columns)

	variants := make([]core.Variant, 0, len(rows))
	for i, row := range rows {
		fields := strings.Split(row, "\t")

		pos, ok := parsePosition(fields[1])
		if !ok {
			slog.Warn("skipping variant with unparsable position", "row", i+1, "position", fields[1])
			continue
		}

		variant := core.Variant{
			Chromosome: fields[0],
			Position:   pos,
			RSID:       orMissing(fields[2]),
			Gene:       geneFromInfo(fields[7]),
			Reference:  orMissing(fields[3]),
			Alternate:  orMissing(fields[4]),
			Quality:    orMissing(fields[5]),
			Filter:     orMissing(fields[6]),
			Info:       fields[7],
		}

		if columns > mandatoryColumns {
			variant.Format = fields[8]
		}
		if len(sampleNames) > 0 {
			variant.Genotypes = make(map[string]core.Genotype, len(sampleNames))
			for j, name := range sampleNames {
				variant.Genotypes[name] = parseGenotype(fields[9+j])
			}
			variant.GenotypeStats = genotypeStats(variant.Genotypes)
		}

		variants = append(variants, variant)
	}

	return variants, nil
}

// extractBasic parses only the eight mandatory columns, trying the tab
// delimiter first and then single spaces. The first delimiter that splits
// every row into at least eight fields wins.
func extractBasic(lines []string) ([]core.Variant, error) {
	rows := dataRows(lines)

	for _, sep := range []string{"\t", " "} {
		fieldRows, ok := splitRows(rows, sep)
		if !ok {
			continue
		}

		variants := make([]core.Variant, 0, len(fieldRows))
		for i, fields := range fieldRows {
			pos, okPos := parsePosition(fields[1])
			if !okPos {
				slog.Warn("skipping variant with unparsable position", "row", i+1, "position", fields[1])
				continue
			}

			variants = append(variants, core.Variant{
				Chromosome: fields[0],
				Position:   pos,
				RSID:       orMissing(fields[2]),
				Gene:       geneFromInfo(fields[7]),
				Reference:  orMissing(fields[3]),
				Alternate:  orMissing(fields[4]),
				Info:       fields[7],
			})
		}
		return variants, nil
	}

	return nil, fmt.Errorf("%w: no delimiter yields %d columns", ErrInsufficientColumns, mandatoryColumns)
}

// extractManual salvages rows line by line: any non-comment line that
// splits into at least eight non-empty fields by tab or space is accepted,
// everything else is skipped.
func extractManual(lines []string) []core.Variant {
	var variants []core.Variant

	for i, line := range lines {
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}

		var fields []string
		for _, sep := range []string{"\t", " "} {
			candidate := nonEmptyFields(strings.Split(strings.TrimRight(line, "\r\n"), sep))
			if len(candidate) >= mandatoryColumns {
				fields = candidate
				break
			}
		}
		if fields == nil {
			slog.Debug("skipping line, cannot split into 8 fields", "line", i+1)
			continue
		}

		pos, ok := parsePosition(fields[1])
		if !ok {
			slog.Warn("skipping variant with unparsable position", "line", i+1, "position", fields[1])
			continue
		}

		variants = append(variants, core.Variant{
			Chromosome: fields[0],
			Position:   pos,
			RSID:       fields[2],
			Gene:       geneFromInfo(fields[7]),
			Reference:  fields[3],
			Alternate:  fields[4],
			Info:       fields[7],
		})
	}

	return variants
}

// dataRows filters out comment and blank lines.
func dataRows(lines []string) []string {
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
	}
	return rows
}

// splitRows splits every row by sep, keeping only non-empty fields.
// Returns false if any row yields fewer than the mandatory column count.
func splitRows(rows []string, sep string) ([][]string, bool) {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		fields := nonEmptyFields(strings.Split(row, sep))
		if len(fields) < mandatoryColumns {
			return nil, false
		}
		out = append(out, fields)
	}
	return out, true
}

func nonEmptyFields(fields []string) []string {
	out := fields[:0:0]
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			out = append(out, f)
		}
	}
	return out
}

// sampleColumnNames derives names for the per-sample columns.
// A ten-column file carries the single conventional SAMPLE1 column;
// wider files get positional SAMPLE_n names.
func sampleColumnNames(columns int) []string {
	if columns <= mandatoryColumns {
		return nil
	}
	if columns == mandatoryColumns+2 {
		return []string{"SAMPLE1"}
	}
	names := make([]string, 0, columns-mandatoryColumns-1)
	for i := 0; i < columns-mandatoryColumns-1; i++ {
		names = append(names, fmt.Sprintf("SAMPLE_%d", i))
	}
	return names
}

// parsePosition parses a mandatory position field.
// Positions must be non-negative integers.
func parsePosition(s string) (int, bool) {
	pos, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || pos < 0 {
		return 0, false
	}
	return pos, true
}

// geneFromInfo scans a semicolon-separated INFO field for a GENE= entry.
func geneFromInfo(info string) string {
	for _, entry := range strings.Split(info, ";") {
		if value, found := strings.CutPrefix(entry, "GENE="); found {
			return value
		}
	}
	return unknownGene
}

// parseGenotype splits a sample value on ":" into call and depth.
func parseGenotype(raw string) core.Genotype {
	if raw == "" {
		raw = "./."
	}
	if call, rest, found := strings.Cut(raw, ":"); found {
		depth := rest
		if next, _, hasMore := strings.Cut(rest, ":"); hasMore {
			depth = next
		}
		if depth == "" {
			depth = "0"
		}
		return core.Genotype{Call: call, Depth: depth, Raw: raw}
	}
	return core.Genotype{Call: raw, Depth: "0", Raw: raw}
}

func genotypeStats(genotypes map[string]core.Genotype) map[string]int {
	stats := make(map[string]int, len(genotypes))
	for _, gt := range genotypes {
		stats[gt.Call]++
	}
	return stats
}

func orMissing(s string) string {
	if strings.TrimSpace(s) == "" {
		return missingValue
	}
	return s
}
