package entity

// Catalogs the sales team works with. Sources are open-ended in practice
// (manual entry and webhooks add their own), these are the known ones.
var (
	KnownSources   = []string{"Website", "Meta Ads", "Google Ads", "LinkedIn", "Referral"}
	KnownServices  = []string{"Web Development", "Mobile App", "SEO Services", "Digital Marketing", "Consulting"}
	KnownCampaigns = []string{"Summer Sale", "Product Launch", "Brand Awareness", "Lead Generation", "Retargeting"}
	TeamRoster     = []string{"John Smith", "Sarah Johnson", "Mike Davis", "Emily Brown"}
)

// IsRosterMember reports whether name can own a lead. Unassigned counts.
func IsRosterMember(name string) bool {
	if name == Unassigned {
		return true
	}
	for _, m := range TeamRoster {
		if m == name {
			return true
		}
	}
	return false
}
