package external

type ESPN_Roster struct {
	Athletes []ESPN_RosterEntry `json:"athletes"`
}

// ESPN_RosterEntry covers both roster shapes the site API returns:
// football groups athletes under position headings (Items populated),
// every other league lists them flat (athlete fields on the entry).
type ESPN_RosterEntry struct {
	Items []ESPN_Athlete `json:"items"`

	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

type ESPN_Athlete struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	DisplayName string `json:"displayName"`
	Jersey      string `json:"jersey"`
}
