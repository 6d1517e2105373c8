// Package core holds the domain types shared by every layer of the replay
// engine: positions, samples and the timeline they form.
package core

// Position represents a 2D point in normalized pitch coordinates.
// 0,0 is one corner flag, 1,1 the diagonally opposite one.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BallPosition represents the ball in normalized pitch coordinates.
// Z is normalized height: 0 = on the ground, 1 = maximum recorded height.
type BallPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Sample is one recorded snapshot of ball and player positions.
// Player ordering is semantically meaningful and must be preserved:
// indices 0..PlayersPerTeam-1 are the home side, the rest the away side.
type Sample struct {
	Time    float64      `json:"time"`
	Ball    BallPosition `json:"ball"`
	Players []Position   `json:"players"`
}

// PlayersPerTeam is the number of players fielded by one side.
const PlayersPerTeam = 11

// DefaultPlayerCount is the total player count of a full recording.
const DefaultPlayerCount = 2 * PlayersPerTeam

// TeamOf returns 0 for the home side and 1 for the away side given a
// player's index within a sample.
func TeamOf(playerIndex int) int {
	if playerIndex < PlayersPerTeam {
		return 0
	}
	return 1
}

// ShirtNumber returns the 1-based number shown for a player index,
// restarting at 1 for the away side.
func ShirtNumber(playerIndex int) int {
	return playerIndex%PlayersPerTeam + 1
}
