package game

// InputState is the player intent posted by the API layer.
type InputState struct {
	MoveX  float64 `json:"moveX"`
	MoveY  float64 `json:"moveY"`
	Firing bool    `json:"firing"`
}

// PlayerController translates external input into player-ship intents. It is
// the only write path into the player from outside the game thread.
type PlayerController struct {
	gameMode *ShooterGameMode
}

// NewPlayerController binds a controller to the running game mode.
func NewPlayerController(gameMode *ShooterGameMode) *PlayerController {
	return &PlayerController{gameMode: gameMode}
}

// Apply forwards the input intents to the player ship. Safe from any
// goroutine.
func (pc *PlayerController) Apply(input InputState) {
	pc.gameMode.ApplyInput(input.MoveX, input.MoveY, input.Firing)
}
