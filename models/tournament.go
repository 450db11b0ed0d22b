package models

// Tournament is a competition the owner took part in.
type Tournament struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Date         string `json:"date,omitempty"`
	Modality     string `json:"modality,omitempty"`
	TotalPlayers int    `json:"totalPlayers,omitempty"`

	// Result is the final placement, e.g. "Campeón" or "9º". It is the key
	// into a circuit's points system.
	Result string `json:"result,omitempty"`

	// Circuit is the id of the circuit the tournament counts for, if any.
	Circuit *string `json:"circuit,omitempty"`

	Cue        string `json:"cue,omitempty"`
	FinalRival string `json:"finalRival,omitempty"`
	Notes      string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`

	Stats   *TournamentStats  `json:"stats,omitempty"`
	Matches []TournamentMatch `json:"matches,omitempty"`
}

// TournamentStats summarises the owner's matches inside one tournament.
// MatchesLost, WinRate and AverageGamesPerMatch are derived.
type TournamentStats struct {
	MatchesPlayed        int     `json:"matchesPlayed"`
	MatchesWon           int     `json:"matchesWon"`
	MatchesLost          int     `json:"matchesLost"`
	GamesWon             int     `json:"gamesWon"`
	GamesLost            int     `json:"gamesLost"`
	WinRate              float64 `json:"winRate"`
	AverageGamesPerMatch float64 `json:"averageGamesPerMatch"`
}

// TournamentMatch is one round played inside a tournament.
type TournamentMatch struct {
	Round    string `json:"round"`
	Opponent string `json:"opponent"`
	Score    string `json:"score"`
	Won      bool   `json:"won"`
}

// Derive fills in the derived statistics from the counted ones.
func (s TournamentStats) Derive() TournamentStats {
	s.MatchesLost = 0
	s.WinRate = 0
	s.AverageGamesPerMatch = 0

	if s.MatchesPlayed > 0 {
		s.MatchesLost = s.MatchesPlayed - s.MatchesWon
		s.WinRate = Ratio(float64(s.MatchesWon), float64(s.MatchesPlayed))
		s.AverageGamesPerMatch = Round1(float64(s.GamesWon+s.GamesLost) / float64(s.MatchesPlayed))
	}
	return s
}

// DeriveTournament recomputes the stats block of a tournament record in
// place. Unknown keys inside stats are kept.
func DeriveTournament(rec Record) {
	raw, _ := rec["stats"].(map[string]any)
	stats := TournamentStats{
		MatchesPlayed: Int(raw["matchesPlayed"]),
		MatchesWon:    Int(raw["matchesWon"]),
		GamesWon:      Int(raw["gamesWon"]),
		GamesLost:     Int(raw["gamesLost"]),
	}.Derive()

	out := make(map[string]any, len(raw)+7)
	for k, v := range raw {
		out[k] = v
	}
	out["matchesPlayed"] = stats.MatchesPlayed
	out["matchesWon"] = stats.MatchesWon
	out["matchesLost"] = stats.MatchesLost
	out["gamesWon"] = stats.GamesWon
	out["gamesLost"] = stats.GamesLost
	out["winRate"] = stats.WinRate
	out["averageGamesPerMatch"] = stats.AverageGamesPerMatch
	rec["stats"] = out
}
