package appointment

import "github.com/BruksfildServices01/appointease/internal/audit"

type auditDispatcher interface {
	Dispatch(ev audit.Event)
}

func event(actorID, action, entity, entityID string, meta any) audit.Event {
	return audit.Event{
		UserID:   audit.Str(actorID),
		Action:   action,
		Entity:   entity,
		EntityID: audit.Str(entityID),
		Metadata: meta,
	}
}

func (d Deps) dispatch(ev audit.Event) {
	if d.Audit == nil {
		return
	}
	d.Audit.Dispatch(ev)
}
