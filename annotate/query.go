package annotate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/variantlab/genechat/core"
)

// buildQuery embeds a variant's fields into the natural-language lookup
// query. Optional fields (rsID, genotype data, the caller's note) are
// included only when present.
func buildQuery(v *core.Variant, userNote string) string {
	var b strings.Builder

	b.WriteString("Analyze this genetic variant and provide comprehensive medical information:\n\n")
	b.WriteString("VARIANT DETAILS:\n")
	fmt.Fprintf(&b, "- Gene: %s\n", v.Gene)
	fmt.Fprintf(&b, "- Chromosome: %s\n", v.Chromosome)
	fmt.Fprintf(&b, "- Position: %d\n", v.Position)
	fmt.Fprintf(&b, "- Reference allele: %s\n", v.Reference)
	fmt.Fprintf(&b, "- Alternate allele: %s\n", v.Alternate)
	if v.HasRSID() {
		fmt.Fprintf(&b, "- rsID: %s\n", v.RSID)
	}

	if len(v.Genotypes) > 0 {
		b.WriteString("\nGENOTYPE DATA:\n")
		for _, sample := range sortedSamples(v.Genotypes) {
			gt := v.Genotypes[sample]
			fmt.Fprintf(&b, "- %s: %s (Depth: %s)\n", sample, gt.Call, gt.Depth)
		}
		if len(v.GenotypeStats) > 0 {
			fmt.Fprintf(&b, "\nGenotype Statistics: %v\n", v.GenotypeStats)
		}
	}

	if userNote != "" {
		fmt.Fprintf(&b, "\nUSER NOTE:\n%s\n", userNote)
	}

	b.WriteString("\nREQUIRED ANALYSIS:\n")
	b.WriteString("1. Consider this specific gene and variant as reported in medical databases\n")
	b.WriteString("2. Find disease associations and clinical significance\n")
	b.WriteString("3. Identify inheritance patterns and risk factors\n")
	b.WriteString("4. Look for treatment options and management strategies\n")
	b.WriteString("5. Provide evidence-based recommendations\n")

	return b.String()
}

// sortedSamples returns sample names in stable order so queries are
// deterministic.
func sortedSamples(genotypes map[string]core.Genotype) []string {
	samples := make([]string, 0, len(genotypes))
	for name := range genotypes {
		samples = append(samples, name)
	}
	sort.Strings(samples)
	return samples
}
