package notify

import (
	"go.uber.org/zap"

	"tool-directory/pkg/models"
	"tool-directory/pkg/submit"
	"tool-directory/pkg/validation"
)

// MsgAccepted is shown when a submission is accepted.
const MsgAccepted = "Tool submitted successfully!"

// Sink routes an outcome either to a form field or to the toaster.
type Sink struct {
	toaster *Toaster
	log     *zap.SugaredLogger
}

// NewSink creates a sink that emits toasts through toaster.
func NewSink(toaster *Toaster, log *zap.SugaredLogger) *Sink {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Sink{toaster: toaster, log: log}
}

// Toaster returns the toaster the sink writes to.
func (s *Sink) Toaster() *Toaster {
	return s.toaster
}

// Deliver surfaces an outcome. Field-scoped rejections are returned for the
// caller to attach to the form; every other outcome becomes a toast. Every
// rejection yields exactly one of the two.
func (s *Sink) Deliver(o submit.Outcome) validation.FieldErrors {
	if o.IsAccepted() {
		s.toaster.Show(KindSuccess, MsgAccepted)
		s.log.Infow("submission accepted")
		return nil
	}

	s.log.Infow("submission rejected", "reason", o.Reason, "message", o.Message)

	// A field-scoped outcome still supersedes whatever toast is live.
	switch o.Reason {
	case submit.ReasonDuplicate:
		s.toaster.Clear()
		return validation.FieldErrors{models.FieldName: submit.MsgDuplicate}
	case submit.ReasonValidation:
		if !o.Fields.Valid() {
			s.toaster.Clear()
			return o.Fields.Clone()
		}
	}

	rej := &submit.RejectionError{Reason: o.Reason, Message: o.Message, Fields: o.Fields}
	msg := rej.UserMessage()
	if msg == "" {
		msg = submit.MsgTransient
	}
	s.toaster.Show(KindError, msg)
	return nil
}
