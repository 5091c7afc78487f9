package templates

import (
	"fmt"
	"strings"

	"rexlog-service/internal/domain/entity"
)

// OpportunityTitle builds the short headline for a REX opportunity prompt
func OpportunityTitle(opp *entity.RexOpportunity) string {
	return fmt.Sprintf("Capture a REX for %q", opp.WindowTitle)
}

// OpportunityMessage builds the human-readable body for a REX opportunity
// notification, ending with the deep link into the full editor.
func OpportunityMessage(opp *entity.RexOpportunity) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Maintenance window %q is finished with %d anomaly(ies) tracked",
		opp.WindowTitle, opp.AnomalyCount)
	if opp.ResolvedCount > 0 {
		fmt.Fprintf(&b, ", %d of them resolved", opp.ResolvedCount)
	}
	b.WriteString(".\n")

	if opp.RexCount == 0 {
		b.WriteString("No return of experience has been captured yet.\n")
	} else {
		fmt.Fprintf(&b, "%d return(s) of experience captured so far", opp.RexCount)
		if opp.LastRexAt != nil {
			fmt.Fprintf(&b, ", last one on %s", opp.LastRexAt.Format("2006-01-02 15:04"))
		}
		b.WriteString(".\n")
	}

	fmt.Fprintf(&b, "Create one here: %s", opp.EditorURL)
	return b.String()
}
