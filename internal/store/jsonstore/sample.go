package jsonstore

import (
	"time"

	"github.com/idilsaglam/lostfound/internal/model"
)

// SampleItems are the demo reports written by `lostfound init`.
func SampleItems() []model.Item {
	return []model.Item{
		{
			ID:           "1",
			RouteID:      "1",
			Kind:         model.KindLost,
			Category:     "Electronics",
			Description:  "Samsung Galaxy phone with red cover",
			Location:     "Tinkune",
			Date:         model.NewDate(2026, time.January, 15),
			Status:       model.StatusOpen,
			ReportedBy:   "Raj Shrestha",
			ContactEmail: "raj.shrestha@email.com",
		},
		{
			ID:           "2",
			RouteID:      "2",
			Kind:         model.KindFound,
			Category:     "Personal Items",
			Description:  "Black leather wallet with 5000 cash",
			Location:     "Ratnapark",
			Date:         model.NewDate(2026, time.January, 16),
			Status:       model.StatusOpen,
			ReportedBy:   "Driver #12",
			ContactEmail: "driver12@busoperator.com",
			ImageURL:     "images/wallet.jpg",
		},
		{
			ID:           "3",
			RouteID:      "1",
			Kind:         model.KindFound,
			Category:     "Electronics",
			Description:  "Samsung smartphone with red protective case",
			Location:     "Sinamangal",
			Date:         model.NewDate(2026, time.January, 15),
			Status:       model.StatusOpen,
			ReportedBy:   "Station Supervisor",
			ContactEmail: "supervisor@station.com",
			ImageURL:     "images/smartphone.jpg",
		},
		{
			ID:           "4",
			RouteID:      "2",
			Kind:         model.KindLost,
			Category:     "Personal Items",
			Description:  "Black wallet with citizenship and ID cards",
			Location:     "Maharajgunj",
			Date:         model.NewDate(2026, time.January, 16),
			Status:       model.StatusOpen,
			ReportedBy:   "Sunita Gurung",
			ContactEmail: "sunita.gurung@email.com",
		},
	}
}
