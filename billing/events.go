package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"encore.dev/pubsub"
	"encore.dev/rlog"

	"encore.app/billing/model"
)

// BillStatusChangedEvent is published after a status change is committed.
type BillStatusChangedEvent struct {
	BillUUID  string           `json:"bill_uuid"`
	Status    model.BillStatus `json:"status"`
	PayorType model.PayorType  `json:"payor_type"`
	PayorID   int64            `json:"payor_id"`
	Amount    int64            `json:"amount"`
	Source    string           `json:"source"`
	ChangedAt time.Time        `json:"changed_at"`
}

var BillStatusChanged = pubsub.NewTopic[*BillStatusChangedEvent]("bill-status-changed", pubsub.TopicConfig{
	DeliveryGuarantee: pubsub.AtLeastOnce,
})

func newStatusChangedEvent(bill *model.Bill, source string) *BillStatusChangedEvent {
	return &BillStatusChangedEvent{
		BillUUID:  bill.UUID.String(),
		Status:    bill.Status,
		PayorType: bill.PayorType,
		PayorID:   bill.PayorID,
		Amount:    bill.Amount,
		Source:    source,
		ChangedAt: bill.UpdatedAt,
	}
}

// publishStatusChange notifies subscribers without holding up the caller.
func publishStatusChange(bill *model.Bill, source string) {
	if bill == nil {
		return
	}
	event := newStatusChangedEvent(bill, source)
	runAsync("publish bill status", func(ctx context.Context) error {
		if _, err := BillStatusChanged.Publish(ctx, event); err != nil {
			return err
		}
		rlog.Debug("bill status published", "bill_uuid", event.BillUUID, "status", event.Status, "source", source)
		return nil
	})
}

// publishCurrentStatus publishes the bill as it is stored once the async
// slot runs, for callers that only hold the bill UUID.
func (s *Service) publishCurrentStatus(billUUID uuid.UUID, source string) {
	runAsync("publish bill status", func(ctx context.Context) error {
		bill, err := s.business.GetBill(ctx, billUUID)
		if err != nil {
			return err
		}
		_, err = BillStatusChanged.Publish(ctx, newStatusChangedEvent(bill, source))
		return err
	})
}
