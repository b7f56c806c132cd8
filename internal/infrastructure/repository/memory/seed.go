package memory

import (
	"time"

	"github.com/courtvision/fantasy-hoops/internal/domain/gamestat"
	"github.com/courtvision/fantasy-hoops/internal/domain/league"
	"github.com/courtvision/fantasy-hoops/internal/domain/player"
)

const LeagueIDDemo int64 = 1

func SeedLeagues() []league.League {
	return []league.League{
		{ID: LeagueIDDemo, Name: "Courtvision Demo League", Season: "2025-26"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: 201939, FullName: "Stephen Curry", TeamAbbr: "GSW", Position: "G", IsActive: true},
		{ID: 2544, FullName: "LeBron James", TeamAbbr: "LAL", Position: "F", IsActive: true},
		{ID: 203999, FullName: "Nikola Jokic", TeamAbbr: "DEN", Position: "C", IsActive: true},
		{ID: 1629029, FullName: "Luka Doncic", TeamAbbr: "LAL", Position: "G", IsActive: true},
		{ID: 203507, FullName: "Giannis Antetokounmpo", TeamAbbr: "MIL", Position: "F", IsActive: true},
		{ID: 1628369, FullName: "Jayson Tatum", TeamAbbr: "BOS", Position: "F", IsActive: true},
		{ID: 1628983, FullName: "Shai Gilgeous-Alexander", TeamAbbr: "OKC", Position: "G", IsActive: true},
		{ID: 1641705, FullName: "Victor Wembanyama", TeamAbbr: "SAS", Position: "C", IsActive: true},
	}
}

func SeedGameStats() []gamestat.GameStat {
	day := func(d int) time.Time {
		return time.Date(2025, 11, d, 0, 0, 0, 0, time.UTC)
	}

	return []gamestat.GameStat{
		{PlayerID: 201939, GameID: "0022500101", GameDate: day(1), Matchup: "GSW vs. LAL", Points: 32, Rebounds: 5, Assists: 6, Steals: 1, FGMade: 11, FGAttempted: 22, FTMade: 4, FTAttempted: 4, ThreesMade: 6, Turnovers: 3},
		{PlayerID: 201939, GameID: "0022500112", GameDate: day(3), Matchup: "GSW @ DEN", Points: 27, Rebounds: 4, Assists: 7, Steals: 2, FGMade: 9, FGAttempted: 19, FTMade: 5, FTAttempted: 5, ThreesMade: 4, Turnovers: 2},
		{PlayerID: 2544, GameID: "0022500101", GameDate: day(1), Matchup: "LAL @ GSW", Points: 24, Rebounds: 8, Assists: 9, Steals: 1, Blocks: 1, FGMade: 10, FGAttempted: 18, FTMade: 3, FTAttempted: 5, ThreesMade: 1, Turnovers: 4},
		{PlayerID: 203999, GameID: "0022500112", GameDate: day(3), Matchup: "DEN vs. GSW", Points: 29, Rebounds: 14, Assists: 12, Steals: 1, Blocks: 1, FGMade: 12, FGAttempted: 20, FTMade: 5, FTAttempted: 6, ThreesMade: 0, Turnovers: 3},
		{PlayerID: 1629029, GameID: "0022500120", GameDate: day(4), Matchup: "LAL vs. BOS", Points: 35, Rebounds: 9, Assists: 10, Steals: 2, FGMade: 12, FGAttempted: 25, FTMade: 7, FTAttempted: 9, ThreesMade: 4, Turnovers: 5},
		{PlayerID: 203507, GameID: "0022500125", GameDate: day(5), Matchup: "MIL vs. OKC", Points: 33, Rebounds: 12, Assists: 6, Blocks: 2, FGMade: 13, FGAttempted: 21, FTMade: 7, FTAttempted: 11, ThreesMade: 0, Turnovers: 4},
		{PlayerID: 1628369, GameID: "0022500120", GameDate: day(4), Matchup: "BOS @ LAL", Points: 28, Rebounds: 8, Assists: 5, Steals: 1, FGMade: 10, FGAttempted: 23, FTMade: 4, FTAttempted: 4, ThreesMade: 4, Turnovers: 2},
		{PlayerID: 1628983, GameID: "0022500125", GameDate: day(5), Matchup: "OKC @ MIL", Points: 31, Rebounds: 5, Assists: 6, Steals: 2, Blocks: 1, FGMade: 11, FGAttempted: 20, FTMade: 8, FTAttempted: 8, ThreesMade: 1, Turnovers: 2},
		{PlayerID: 1641705, GameID: "0022500130", GameDate: day(6), Matchup: "SAS vs. DEN", Points: 25, Rebounds: 11, Assists: 3, Blocks: 4, FGMade: 9, FGAttempted: 18, FTMade: 5, FTAttempted: 7, ThreesMade: 2, Turnovers: 3},
	}
}
