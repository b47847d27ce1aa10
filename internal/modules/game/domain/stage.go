package domain

type Stage string

const (
	StageInit     Stage = "init"
	StagePresent  Stage = "present"
	StageRespond  Stage = "respond"
	StageGameOver Stage = "gameover"
)

type EndReason string

const (
	ReasonNone     EndReason = ""
	ReasonTime     EndReason = "time"
	ReasonMaxLevel EndReason = "max_level"
	ReasonMiss     EndReason = "miss"
)
