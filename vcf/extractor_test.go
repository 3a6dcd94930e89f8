package vcf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantlab/genechat/core"
)

const sampleHeader = "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO"

func TestExtract_SingleVariant(t *testing.T) {
	input := sampleHeader + "\n" +
		"chr1\t100\trs1\tA\tT\t.\t.\tGENE=BRCA1\n"

	variants, err := Extract(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, variants, 1)

	v := variants[0]
	assert.Equal(t, "chr1", v.Chromosome)
	assert.Equal(t, 100, v.Position)
	assert.Equal(t, "rs1", v.RSID)
	assert.Equal(t, "BRCA1", v.Gene)
	assert.Equal(t, "A", v.Reference)
	assert.Equal(t, "T", v.Alternate)
}

func TestExtract_NoHeader(t *testing.T) {
	input := "chr1\t100\trs1\tA\tT\t.\t.\tGENE=BRCA1\n"

	_, err := Extract(strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestExtract_EmptyAfterHeader(t *testing.T) {
	// A tier that completes with zero records is the final result;
	// an empty file must not be masked by later tiers.
	variants, err := Extract(strings.NewReader(sampleHeader + "\n"))
	require.NoError(t, err)
	assert.Empty(t, variants)
}

func TestExtract_GenotypeColumns(t *testing.T) {
	input := "##fileformat=VCFv4.2\n" +
		sampleHeader + "\tFORMAT\tSAMPLE1\n" +
		"chr17\t43044295\trs80357906\tG\tA\t50\tPASS\tGENE=BRCA1\tGT:DP\t0/1:20\n" +
		"chr13\t32315474\t.\tT\tC\t99\tPASS\tGENE=BRCA2\tGT:DP\t1/1:35\n"

	variants, err := Extract(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, variants, 2)

	first := variants[0]
	assert.Equal(t, "GT:DP", first.Format)
	require.Contains(t, first.Genotypes, "SAMPLE1")
	assert.Equal(t, "0/1", first.Genotypes["SAMPLE1"].Call)
	assert.Equal(t, "20", first.Genotypes["SAMPLE1"].Depth)
	assert.Equal(t, "0/1:20", first.Genotypes["SAMPLE1"].Raw)
	assert.Equal(t, map[string]int{"0/1": 1}, first.GenotypeStats)

	second := variants[1]
	assert.Equal(t, ".", second.RSID)
	assert.Equal(t, "BRCA2", second.Gene)
	assert.Equal(t, "1/1", second.Genotypes["SAMPLE1"].Call)
}

func TestExtract_FormatWithoutSamples(t *testing.T) {
	// A FORMAT column with no sample columns still records the format.
	input := sampleHeader + "\tFORMAT\n" +
		"chr1\t100\trs1\tA\tT\t.\t.\tGENE=BRCA1\tGT:DP\n"

	variants, err := Extract(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "GT:DP", variants[0].Format)
	assert.Empty(t, variants[0].Genotypes)
}

func TestExtract_MultipleSampleColumns(t *testing.T) {
	input := sampleHeader + "\tFORMAT\tS1\tS2\n" +
		"chr1\t100\trs1\tA\tT\t.\t.\tGENE=TP53\tGT:DP\t0/1:12\t1/1:30\n"

	variants, err := Extract(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, variants, 1)

	// Sample names are positional when more than one sample is present.
	require.Len(t, variants[0].Genotypes, 2)
	assert.Contains(t, variants[0].Genotypes, "SAMPLE_0")
	assert.Contains(t, variants[0].Genotypes, "SAMPLE_1")
	assert.Equal(t, map[string]int{"0/1": 1, "1/1": 1}, variants[0].GenotypeStats)
}

func TestExtract_UnknownGene(t *testing.T) {
	input := sampleHeader + "\n" +
		"chr2\t200\t.\tC\tG\t.\t.\tDP=100;AF=0.5\n"

	variants, err := Extract(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "Unknown", variants[0].Gene)
}

func TestExtract_SkipsUnparsablePosition(t *testing.T) {
	input := sampleHeader + "\n" +
		"chr1\t100\trs1\tA\tT\t.\t.\tGENE=BRCA1\n" +
		"chr2\tnotanumber\trs2\tC\tG\t.\t.\tGENE=BRCA2\n" +
		"chr3\t-5\trs3\tG\tA\t.\t.\tGENE=TP53\n" +
		"chr4\t400\trs4\tT\tC\t.\t.\tGENE=EGFR\n"

	variants, err := Extract(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, variants, 2, "bad positions reduce the count, never abort")
	assert.Equal(t, "chr1", variants[0].Chromosome)
	assert.Equal(t, "chr4", variants[1].Chromosome)
}

func TestExtract_SpaceDelimitedFallsToBasic(t *testing.T) {
	// Space-delimited rows fail the comprehensive tab parse and are
	// picked up by the basic tier's second delimiter.
	input := "#CHROM POS ID REF ALT QUAL FILTER INFO\n" +
		"chr1 100 rs1 A T . . GENE=BRCA1\n" +
		"chr2 200 rs2 C G . . GENE=BRCA2\n"

	variants, err := Extract(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, "BRCA1", variants[0].Gene)
	assert.Equal(t, 200, variants[1].Position)
}

func TestExtract_RaggedRowsFallToManual(t *testing.T) {
	// Mixed row widths break both columnar tiers; the manual tier
	// salvages the rows that still split into eight fields.
	input := sampleHeader + "\n" +
		"chr1\t100\trs1\tA\tT\t.\t.\tGENE=BRCA1\n" +
		"chr2\t200\n" +
		"chr3\t300\trs3\tG\tC\t.\t.\tGENE=TP53\n"

	variants, err := Extract(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, "chr1", variants[0].Chromosome)
	assert.Equal(t, "chr3", variants[1].Chromosome)
}

func TestExtract_TierOrderDeterministic(t *testing.T) {
	// A record set parseable by the comprehensive tier must come out of
	// it, carrying the fields only that tier extracts.
	input := sampleHeader + "\n" +
		"chr1\t100\trs1\tA\tT\t99\tPASS\tGENE=BRCA1\n"

	variants, err := Extract(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "99", variants[0].Quality)
	assert.Equal(t, "PASS", variants[0].Filter)
}

func TestExtract_CommentLinesIgnored(t *testing.T) {
	input := "##fileformat=VCFv4.2\n" +
		"##source=test\n" +
		sampleHeader + "\n" +
		"##unexpected comment between rows\n" +
		"chr1\t100\trs1\tA\tT\t.\t.\tGENE=BRCA1\n"

	variants, err := Extract(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, variants, 1)
}

func TestExtractManual_Direct(t *testing.T) {
	lines := []string{
		"# comment",
		"chr1\t100\trs1\tA\tT\t.\t.\tGENE=BRCA1",
		"too few fields",
		"chr2 200 rs2 C G . . GENE=BRCA2",
	}

	variants := extractManual(lines)
	require.Len(t, variants, 2)
	assert.Equal(t, core.Variant{
		Chromosome: "chr1",
		Position:   100,
		RSID:       "rs1",
		Gene:       "BRCA1",
		Reference:  "A",
		Alternate:  "T",
		Info:       "GENE=BRCA1",
	}, variants[0])
	assert.Equal(t, "chr2", variants[1].Chromosome)
}
