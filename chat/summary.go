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

package chat

import (
	"fmt"
	"strings"

	"github.com/variantlab/genechat/core"
)

// formatSummary renders enriched variants as a markdown table, one row per
// variant in input order.
func formatSummary(variants []core.AnnotatedVariant) string {
	var b strings.Builder
	b.WriteString("## Variant Analysis Summary\n\n")
	b.WriteString("| Chromosome | Position | Gene | Change | Insight |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, v := range variants {
		fmt.Fprintf(&b, "| `%s` | `%d` | **%s** | `%s`→`%s` | %s |\n",
			v.Chromosome, v.Position, v.Gene, v.Reference, v.Alternate,
			sanitizeCell(v.SearchSummary))
	}
	b.WriteString("\n---\n")
	b.WriteString("For more details, upload another file or ask a question.")
	return b.String()
}

// frameReply wraps a generated chat reply in the assistant-response block
// shown for every text turn, with the standard tips footer.
func frameReply(reply string) string {
	var b strings.Builder
	b.WriteString("### Assistant Response\n\n")
	b.WriteString(reply)
	b.WriteString("\n\n---\n")
	b.WriteString("**Tips:**\n")
	b.WriteString("- You can upload a VCF file for detailed analysis.\n")
	b.WriteString("- Ask follow-up questions for more insights.")
	return b.String()
}

// sanitizeCell keeps a lookup summary on one table row.
func sanitizeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.TrimSpace(s)
}
