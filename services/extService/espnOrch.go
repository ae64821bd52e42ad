package extService

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
	"unitBookBot/models/external"
	"unitBookBot/services/common"
	"unitBookBot/services/wagerService"
)

// leaguePaths map a league code onto ESPN's sport/league URL segment.
var leaguePaths = map[string]string{
	"NFL": "football/nfl",
	"NBA": "basketball/nba",
	"MLB": "baseball/mlb",
	"NHL": "hockey/nhl",
	"CFB": "football/college-football",
	"CBB": "basketball/mens-college-basketball",
}

const (
	scoreboardUrl = "https://site.api.espn.com/apis/site/v2/sports/%s/scoreboard"
	rosterUrl     = "https://site.api.espn.com/apis/site/v2/sports/%s/teams/%s/roster"
)

// eventTeams remembers which teams an event maps to, so a roster lookup
// by event id alone can reach the right endpoints.
type eventTeams struct {
	leaguePath string
	homeTeamID string
	awayTeamID string
}

// ESPNSource serves the wizard's event and participant lists from
// ESPN's public site API.
type ESPNSource struct {
	mu   sync.Mutex
	seen map[string]eventTeams
}

func NewESPNSource() *ESPNSource {
	return &ESPNSource{seen: make(map[string]eventTeams)}
}

func (e *ESPNSource) ListUpcomingEvents(league string) ([]wagerService.Event, error) {
	path, ok := leaguePaths[league]
	if !ok {
		return nil, fmt.Errorf("unknown league %q", league)
	}

	resp, err := common.ESPNWrapper(fmt.Sprintf(scoreboardUrl, path))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var scoreboard external.ESPN_Scoreboard
	if err = json.NewDecoder(resp.Body).Decode(&scoreboard); err != nil {
		return nil, err
	}

	var events []wagerService.Event
	for _, event := range scoreboard.Events {
		if event.Status.Type.Completed {
			continue
		}
		for _, comp := range event.Competitions {
			ev := wagerService.Event{ID: event.ID, League: league}
			if start, perr := time.Parse("2006-01-02T15:04Z", comp.StartDate); perr == nil {
				ev.StartTime = start
			}

			teams := eventTeams{leaguePath: path}
			for _, competitor := range comp.Competitors {
				if competitor.HomeAway == "home" {
					ev.HomeTeam = competitor.Team.DisplayName
					teams.homeTeamID = competitor.Team.ID
				} else {
					ev.AwayTeam = competitor.Team.DisplayName
					teams.awayTeamID = competitor.Team.ID
				}
			}
			if ev.HomeTeam == "" || ev.AwayTeam == "" {
				continue
			}

			e.mu.Lock()
			e.seen[event.ID] = teams
			e.mu.Unlock()
			events = append(events, ev)
		}
	}

	return events, nil
}

func (e *ESPNSource) ListParticipants(eventID string) (wagerService.Participants, error) {
	e.mu.Lock()
	teams, ok := e.seen[eventID]
	e.mu.Unlock()
	if !ok {
		return wagerService.Participants{}, errors.New("event was not fetched this session")
	}

	home, err := e.fetchRoster(teams.leaguePath, teams.homeTeamID)
	if err != nil {
		return wagerService.Participants{}, err
	}
	away, err := e.fetchRoster(teams.leaguePath, teams.awayTeamID)
	if err != nil {
		return wagerService.Participants{}, err
	}

	return wagerService.Participants{SideA: home, SideB: away}, nil
}

func (e *ESPNSource) fetchRoster(leaguePath, teamID string) ([]string, error) {
	resp, err := common.ESPNWrapper(fmt.Sprintf(rosterUrl, leaguePath, teamID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var roster external.ESPN_Roster
	if err = json.NewDecoder(resp.Body).Decode(&roster); err != nil {
		return nil, err
	}

	// Football rosters group athletes under position headings; the other
	// leagues list them flat.
	var names []string
	for _, group := range roster.Athletes {
		if len(group.Items) > 0 {
			for _, athlete := range group.Items {
				if athlete.FullName != "" {
					names = append(names, athlete.FullName)
				}
			}
		} else if group.FullName != "" {
			names = append(names, group.FullName)
		}
	}
	return names, nil
}
