package scoring

import (
	"sort"

	"github.com/avila-law/intake-platform/internal/leads"
)

// Assignment pairs a lead with the agent it should be routed to.
type Assignment struct {
	LeadID  string
	AgentID string
}

// AssignLeads distributes high-scoring unassigned leads across candidate
// agents round-robin by position. Candidates are attorneys that already carry
// at least one open lead, ordered by ascending workload. A qualifying lead is
// returned in skipped when its indexed agent is at capacity or when no
// candidates exist; it stays unassigned for the next pass.
//
// Agents with zero open leads never enter the pool. That matches the routing
// behavior the firm runs on today, so it is kept even though it looks wrong
// at first glance.
func AssignLeads(scored []*leads.Lead, agents []*leads.Agent) (assignments []Assignment, skipped []string) {
	candidates := make([]*leads.Agent, 0, len(agents))
	for _, a := range agents {
		if a.OpenLeads >= 1 {
			candidates = append(candidates, a)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].OpenLeads < candidates[j].OpenLeads
	})

	assignedThisPass := make(map[string]int, len(candidates))

	idx := 0
	for _, lead := range scored {
		if lead.Score < assignThreshold || lead.AssignedToID != nil {
			continue
		}
		if len(candidates) == 0 {
			skipped = append(skipped, lead.ID)
			continue
		}
		agent := candidates[idx%len(candidates)]
		idx++
		if agent.OpenLeads+assignedThisPass[agent.ID] >= agentCapacity {
			skipped = append(skipped, lead.ID)
			continue
		}
		assignedThisPass[agent.ID]++
		assignments = append(assignments, Assignment{LeadID: lead.ID, AgentID: agent.ID})
	}
	return assignments, skipped
}
