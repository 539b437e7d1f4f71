package service

import "mindhaven/internal/model"

// Broadcaster pushes crisis alerts to the escalation surface (avoids import
// cycle with the websocket transport)
type Broadcaster interface {
	BroadcastCrisisAlert(alert *model.CrisisAlert)
}
