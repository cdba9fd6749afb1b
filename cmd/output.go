package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/s0up4200/yfantasy/models"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// render writes v as indented JSON, or calls table for console output
func render(w io.Writer, format string, v any, table func(io.Writer)) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	table(w)
	return nil
}

// treeItem is one entry of a tree listing
type treeItem struct {
	label   string
	details []string
}

// writeTree prints a titled tree listing
func writeTree(w io.Writer, title string, items []treeItem) {
	if len(items) == 0 {
		fmt.Fprintf(w, "No %s found\n", strings.ToLower(title))
		return
	}

	fmt.Fprintf(w, "\n%s (%d):\n\n", title, len(items))
	for i, item := range items {
		isLast := i == len(items)-1
		prefix, indent := "├", "│   "
		if isLast {
			prefix, indent = "╰", "    "
		}

		fmt.Fprintf(w, "%s── %s\n", prefix, item.label)
		for _, d := range item.details {
			if d != "" {
				fmt.Fprintf(w, "%s%s\n", indent, d)
			}
		}
		if !isLast {
			fmt.Fprintln(w, "│")
		}
	}
	fmt.Fprintln(w)
}

func rule(w io.Writer, width int) {
	fmt.Fprintln(w, strings.Repeat("━", width))
}

func intOr(v *int, fallback string) string {
	if v == nil {
		return fallback
	}
	return strconv.Itoa(*v)
}

func floatOr(v *float64, fallback string) string {
	if v == nil {
		return fallback
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " | ")
}

func formatTimestamp(ts *int) string {
	if ts == nil {
		return "-"
	}
	return time.Unix(int64(*ts), 0).UTC().Format("2006-01-02 15:04")
}

func formatLeague(w io.Writer, l *models.League) {
	fmt.Fprintf(w, "\n%s (%s)\n", l.Name, l.Key)
	rule(w, 60)
	fmt.Fprintf(w, "Teams:        %d\n", l.NumTeams)
	fmt.Fprintf(w, "Scoring:      %s\n", l.ScoringType)
	fmt.Fprintf(w, "Draft:        %s\n", l.DraftStatus)
	fmt.Fprintf(w, "Season:       %s (%s to %s)\n", intOr(l.Season, "-"), l.StartDate, l.EndDate)
	fmt.Fprintf(w, "Week:         %s of %s\n", intOr(l.CurrentWeek, "-"), intOr(l.EndWeek, "-"))
	if l.IsFinished {
		fmt.Fprintln(w, "Status:       finished")
	}
	fmt.Fprintf(w, "URL:          %s\n\n", l.URL)
}

func formatSettings(w io.Writer, s *models.Settings) {
	if s == nil {
		fmt.Fprintln(w, "No settings found")
		return
	}
	fmt.Fprintln(w, "\nSettings:")
	rule(w, 60)
	fmt.Fprintf(w, "Draft:        %s\n", s.DraftType)
	fmt.Fprintf(w, "Scoring:      %s\n", s.ScoringType)
	fmt.Fprintf(w, "Waivers:      %s (%s)\n", s.WaiverType, s.WaiverRule)
	fmt.Fprintf(w, "FAAB:         %t\n", s.UsesFAAB)
	fmt.Fprintf(w, "Max teams:    %s\n", intOr(s.MaxTeams, "-"))
	if s.UsesPlayoff {
		fmt.Fprintf(w, "Playoffs:     %s teams from week %s\n", intOr(s.NumPlayoffTeams, "-"), intOr(s.PlayoffStartWeek, "-"))
	}
	if s.TradeEndDate != "" {
		fmt.Fprintf(w, "Trade end:    %s\n", s.TradeEndDate)
	}

	if len(s.RosterPositions) > 0 {
		var slots []string
		for _, pos := range slices.Sorted(maps.Keys(s.RosterPositions)) {
			slots = append(slots, fmt.Sprintf("%s x%d", pos, s.RosterPositions[pos]))
		}
		fmt.Fprintf(w, "Roster:       %s\n", strings.Join(slots, ", "))
	}

	items := make([]treeItem, 0, len(s.StatCategories))
	for _, stat := range s.StatCategories {
		label := fmt.Sprintf("%s (%s)", stat.DisplayName, stat.ID)
		if stat.Modifier != nil {
			label += " x" + floatOr(stat.Modifier, "")
		}
		items = append(items, treeItem{label: label})
	}
	writeTree(w, "Stat categories", items)

	if len(s.Divisions) > 0 {
		items = items[:0]
		for _, d := range s.Divisions {
			items = append(items, treeItem{label: fmt.Sprintf("%d: %s", d.ID, d.Name)})
		}
		writeTree(w, "Divisions", items)
	}
}

func formatStandings(w io.Writer, teams []*models.Team) {
	if len(teams) == 0 {
		fmt.Fprintln(w, "No standings found")
		return
	}

	rule(w, 72)
	fmt.Fprintf(w, "%-5s %-32s %-10s %-10s %s\n", "RANK", "TEAM", "W-L-T", "PF", "PA")
	rule(w, 72)
	for _, t := range teams {
		s := t.Standings
		if s == nil {
			fmt.Fprintf(w, "%-5s %-32s\n", "-", truncate(t.Name, 32))
			continue
		}
		record := fmt.Sprintf("%d-%d-%d", s.Wins, s.Losses, s.Ties)
		fmt.Fprintf(w, "%-5s %-32s %-10s %-10s %s\n",
			intOr(s.Rank, "-"), truncate(t.Name, 32), record, floatOr(s.PointsFor, "-"), floatOr(s.PointsAgainst, "-"))
	}
	rule(w, 72)
}

func teamItem(t *models.Team) treeItem {
	var managers []string
	for _, m := range t.Managers {
		name := m.Nickname
		if m.IsCommissioner {
			name += " (commissioner)"
		}
		managers = append(managers, name)
	}

	var moves string
	if t.NumberOfMoves != nil || t.NumberOfTrades != nil {
		moves = fmt.Sprintf("Moves: %s, trades: %s", intOr(t.NumberOfMoves, "0"), intOr(t.NumberOfTrades, "0"))
	}
	var waiver string
	if t.WaiverPriority != nil || t.FAABBalance != nil {
		waiver = joinNonEmpty(
			"Waiver priority: "+intOr(t.WaiverPriority, "-"),
			"FAAB: "+intOr(t.FAABBalance, "-"),
		)
	}

	details := []string{t.Key, moves, waiver}
	if len(managers) > 0 {
		details = append(details, "Managers: "+strings.Join(managers, ", "))
	}
	return treeItem{label: t.Name, details: details}
}

func formatTeams(w io.Writer, teams []*models.Team) {
	items := make([]treeItem, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamItem(t))
	}
	writeTree(w, "Teams", items)
}

func formatTeam(w io.Writer, t *models.Team) {
	writeTree(w, "Teams", []treeItem{teamItem(t)})

	if t.Standings != nil {
		formatStandings(w, []*models.Team{t})
	}
	if t.Stats != nil {
		fmt.Fprintf(w, "\nStats (%s %s):\n", t.Stats.CoverageType, t.Stats.CoverageValue)
		for _, id := range slices.Sorted(maps.Keys(t.Stats.Values)) {
			fmt.Fprintf(w, "  %-6s %s\n", id, t.Stats.Values[id])
		}
	}
	if t.Points != nil {
		fmt.Fprintf(w, "Points (%s %s): %s\n", t.Points.CoverageType, t.Points.CoverageValue, floatOr(t.Points.Total, "-"))
	}
	if t.Players != nil {
		formatPlayers(w, t.Players)
	}
	if t.Matchups != nil {
		formatMatchups(w, t.Matchups)
	}
}

func playerItem(p *models.Player) treeItem {
	label := fmt.Sprintf("%s (%s - %s)", p.FullName, p.EditorialTeamAbbr, p.DisplayPosition)
	if p.Status != "" {
		label += " [" + p.Status + "]"
	}

	var slot, owner, owned, points, draft string
	if p.SelectedPosition != nil {
		slot = "Slot: " + p.SelectedPosition.Position
	}
	if p.Ownership != nil {
		owner = "Owner: " + p.Ownership.Type
		if p.Ownership.Owned() {
			owner = "Owner: " + p.Ownership.OwnerTeamName
		}
	}
	if p.PercentOwned != nil {
		owned = fmt.Sprintf("Owned: %s%% (%s)", floatOr(p.PercentOwned.Value, "-"), floatOr(p.PercentOwned.Delta, "0"))
	}
	if p.Points != nil {
		points = "Points: " + floatOr(p.Points.Total, "-")
	}
	if p.DraftAnalysis != nil {
		draft = fmt.Sprintf("ADP: %s, drafted: %s%%",
			floatOr(p.DraftAnalysis.AveragePick, "-"), floatOr(p.DraftAnalysis.PercentDrafted, "-"))
	}

	details := []string{joinNonEmpty(p.Key, slot, owner), joinNonEmpty(owned, points, draft)}
	if p.Stats != nil {
		var stats []string
		for _, id := range slices.Sorted(maps.Keys(p.Stats.Values)) {
			stats = append(stats, id+"="+p.Stats.Values[id])
		}
		details = append(details, "Stats: "+strings.Join(stats, " "))
	}
	if p.InjuryNote != "" {
		details = append(details, "Injury: "+p.InjuryNote)
	}
	return treeItem{label: label, details: details}
}

func formatPlayers(w io.Writer, players []*models.Player) {
	items := make([]treeItem, 0, len(players))
	for _, p := range players {
		items = append(items, playerItem(p))
	}
	writeTree(w, "Players", items)
}

func formatMatchups(w io.Writer, matchups []*models.Matchup) {
	items := make([]treeItem, 0, len(matchups))
	for _, m := range matchups {
		names := make([]string, 0, len(m.Teams))
		for _, t := range m.Teams {
			score := "-"
			if t.Points != nil {
				score = floatOr(t.Points.Total, "-")
			}
			names = append(names, fmt.Sprintf("%s (%s)", t.Name, score))
		}

		var result string
		switch {
		case m.IsTied:
			result = "Tied"
		case m.Winner != nil:
			result = "Winner: " + m.Winner.Name
		}

		var flags []string
		if m.IsPlayoffs {
			flags = append(flags, "playoffs")
		}
		if m.IsConsolation {
			flags = append(flags, "consolation")
		}

		items = append(items, treeItem{
			label: strings.Join(names, " vs "),
			details: []string{
				joinNonEmpty("Week "+intOr(m.Week, "-"), m.WeekStart+" to "+m.WeekEnd, m.Status, strings.Join(flags, ", ")),
				result,
			},
		})
	}
	writeTree(w, "Matchups", items)
}

func formatDraftResults(w io.Writer, results []*models.DraftResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No draft results found")
		return
	}

	rule(w, 72)
	fmt.Fprintf(w, "%-5s %-6s %-16s %-36s %s\n", "PICK", "ROUND", "TEAM", "PLAYER", "COST")
	rule(w, 72)
	for _, r := range results {
		player := r.PlayerKey
		if r.Player != nil {
			player = r.Player.FullName
		}
		fmt.Fprintf(w, "%-5d %-6d %-16s %-36s %s\n", r.Pick, r.Round, r.TeamKey, truncate(player, 36), intOr(r.Cost, ""))
	}
	rule(w, 72)
}

func playerName(p *models.Player) string {
	if p == nil {
		return "?"
	}
	return p.FullName
}

func transactionItem(tx models.Transaction) treeItem {
	info := tx.Info()
	when := formatTimestamp(info.Timestamp)

	var label string
	var details []string
	switch t := tx.(type) {
	case *models.Add:
		label = fmt.Sprintf("%s added %s", t.DestinationTeamName, playerName(t.Player))
		details = append(details, "From: "+t.SourceType)
		if t.FAABBid != nil {
			details = append(details, "FAAB bid: "+intOr(t.FAABBid, ""))
		}
	case *models.Drop:
		label = fmt.Sprintf("%s dropped %s", t.SourceTeamName, playerName(t.Player))
		details = append(details, "To: "+t.DestinationType)
	case *models.AddDrop:
		label = fmt.Sprintf("%s added %s, dropped %s", t.DestinationTeamName, playerName(t.Added), playerName(t.Dropped))
		if t.FAABBid != nil {
			details = append(details, "FAAB bid: "+intOr(t.FAABBid, ""))
		}
	case *models.Trade:
		label = fmt.Sprintf("Trade: %s with %s", t.TraderTeamName, t.TradeeTeamName)
		names := make([]string, 0, len(t.Players))
		for _, p := range t.Players {
			names = append(names, p.FullName)
		}
		if len(names) > 0 {
			details = append(details, "Players: "+strings.Join(names, ", "))
		}
		for _, p := range t.Picks {
			details = append(details, fmt.Sprintf("Round %d pick: %s to %s", p.Round, p.SourceTeamName, p.DestinationTeamName))
		}
	default:
		label = info.Type
	}

	details = append([]string{joinNonEmpty(info.Key, info.Status, when)}, details...)
	return treeItem{label: label, details: details}
}

func formatTransactions(w io.Writer, txs []models.Transaction) {
	items := make([]treeItem, 0, len(txs))
	for _, tx := range txs {
		items = append(items, transactionItem(tx))
	}
	writeTree(w, "Transactions", items)
}

func gameItem(g *models.Game) treeItem {
	var state []string
	if g.IsRegistrationOver {
		state = append(state, "registration over")
	}
	if g.IsOffseason {
		state = append(state, "offseason")
	}
	if g.IsGameOver {
		state = append(state, "game over")
	}
	return treeItem{
		label:   fmt.Sprintf("%s %s (%s)", g.Name, intOr(g.Season, ""), g.Key),
		details: []string{joinNonEmpty(g.Code, g.Type, strings.Join(state, ", ")), g.URL},
	}
}

func formatGames(w io.Writer, games []*models.Game) {
	items := make([]treeItem, 0, len(games))
	for _, g := range games {
		items = append(items, gameItem(g))
	}
	writeTree(w, "Games", items)
}

func formatGame(w io.Writer, g *models.Game) {
	writeTree(w, "Games", []treeItem{gameItem(g)})

	if g.GameWeeks != nil {
		items := make([]treeItem, 0, len(g.GameWeeks))
		for _, wk := range g.GameWeeks {
			items = append(items, treeItem{label: fmt.Sprintf("Week %d: %s to %s", wk.Week, wk.Start, wk.End)})
		}
		writeTree(w, "Weeks", items)
	}
	if g.PositionTypes != nil {
		items := make([]treeItem, 0, len(g.PositionTypes))
		for _, pt := range g.PositionTypes {
			items = append(items, treeItem{label: fmt.Sprintf("%s (%s)", pt.DisplayName, pt.Type)})
		}
		writeTree(w, "Position types", items)
	}
	if g.RosterPositions != nil {
		items := make([]treeItem, 0, len(g.RosterPositions))
		for _, rp := range g.RosterPositions {
			items = append(items, treeItem{
				label:   fmt.Sprintf("%s (%s)", rp.Position, rp.DisplayName),
				details: []string{rp.PositionType},
			})
		}
		writeTree(w, "Roster positions", items)
	}
	if g.StatCategories != nil {
		items := make([]treeItem, 0, len(g.StatCategories))
		for _, sc := range g.StatCategories {
			var base string
			if sc.IsCompositeStat {
				base = "Composite of " + strings.Join(sc.BaseStats, ", ")
			}
			items = append(items, treeItem{
				label:   fmt.Sprintf("%s: %s (%s)", sc.ID, sc.Name, sc.DisplayName),
				details: []string{strings.Join(sc.PositionTypes, ", "), base},
			})
		}
		writeTree(w, "Stat categories", items)
	}
}

func formatUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "\nUser %s\n", u.GUID)
	if u.Games != nil {
		formatGames(w, u.Games)
	}
	if u.Teams != nil {
		formatTeams(w, u.Teams)
	}
}
