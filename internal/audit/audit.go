package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/logging"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/mykafka"
)

const Topic = "audit_events"

// Recorder appends audit log rows for privileged mutations and mirrors them
// to kafka. Both writes are best-effort: a failed audit write never aborts
// the mutation it describes, it is only logged.
type Recorder struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (r *Recorder) Record(ctx context.Context, actorID *uint, action string, details map[string]interface{}) {
	l := logging.FromContext(ctx).With("action", action)

	var detailJSON string
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			l.Error("audit details marshal error", "error", err)
		} else {
			detailJSON = string(data)
		}
	}

	entry := models.AuditLog{
		UserID:  actorID,
		Action:  action,
		Details: detailJSON,
	}
	if err := r.DB.Create(&entry).Error; err != nil {
		l.Error("audit write error", "error", err)
		return
	}

	if r.Producer == nil {
		return
	}

	event := map[string]interface{}{
		"type":     "audit_entry",
		"entry_id": entry.ID,
		"action":   action,
		"details":  detailJSON,
	}
	if actorID != nil {
		event["user_id"] = *actorID
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := r.Producer.PublishEvent(pubCtx, Topic, fmt.Sprint(entry.ID), event); err != nil {
		l.Error("kafka publish error", "error", err)
	}
}
