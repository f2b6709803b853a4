package cart

import (
	"time"

	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/aaravmahajanofficial/rental-checkout/internal/pricing"
)

func buildPayload(st State, wf workflow, now time.Time) models.CheckoutPayload {
	info := st.CustomerInfo
	dates := st.SelectedDates

	schedule := models.PayloadSchedule{
		StartDate:    dates.StartDate,
		EndDate:      dates.EndDate,
		MultiDay:     dates.MultiDay,
		Duration:     pricing.Duration(wf.mode, dates),
		DurationUnit: wf.mode.DurationUnit(),
	}
	if wf.mode == models.OrderModeBooking {
		schedule.StartTime = dates.StartTime
		schedule.EndTime = dates.EndTime
	}

	services := make([]models.PayloadService, 0, len(st.Items))
	for _, item := range st.Items {
		services = append(services, models.PayloadService{
			CartID:    item.CartID,
			ItemID:    item.ID,
			Name:      sanitize(item.Name),
			Category:  sanitize(item.Category),
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
			Duration:  item.Duration,
			LineTotal: pricing.ItemTotal(item),
		})
	}

	return models.CheckoutPayload{
		Customer: models.PayloadCustomer{
			Name:  sanitize(info.Name),
			Email: info.Email,
			Phone: info.Phone,
		},
		Event: models.PayloadEvent{
			Type:            sanitize(info.EventType),
			Location:        sanitize(info.Location),
			Guests:          cloneCustomer(info).Guests,
			SpecialRequests: sanitize(info.SpecialRequests),
			Delivery:        info.Delivery == models.OptionYes,
			Installation:    info.Installation == models.OptionYes,
		},
		Schedule: schedule,
		Services: services,
		Pricing: models.PayloadPricing{
			Subtotal: st.Subtotal,
			TaxRate:  pricing.TaxRate,
			Tax:      st.Tax,
			Total:    st.TotalAmount,
		},
		Metadata: models.PayloadMetadata{
			OrderMode:   wf.mode,
			SubmittedAt: now.UTC(),
			Source:      payloadSource,
			Version:     models.SnapshotVersion,
			ItemCount:   itemCount(st.Items),
		},
	}
}
