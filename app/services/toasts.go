package services

import (
	"fmt"

	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/pkg/notification"
)

// CartToast announces a successful add-to-cart to the shopper's browser.
type CartToast struct {
	Line     models.CartLine
	Quantity int
}

func (n *CartToast) Via() []string { return []string{"ws"} }

func (n *CartToast) ToToast() notification.ToastData {
	return notification.ToastData{
		Level:   "success",
		Message: fmt.Sprintf("%s added to cart", n.Line.Name),
		Data: map[string]interface{}{
			"line_id":  n.Line.ID,
			"quantity": n.Quantity,
		},
	}
}

// WishlistToast announces a wishlist toggle.
type WishlistToast struct {
	ProductID int64
	Added     bool
}

func (n *WishlistToast) Via() []string { return []string{"ws"} }

func (n *WishlistToast) ToToast() notification.ToastData {
	msg := "Removed from wishlist"
	if n.Added {
		msg = "Added to wishlist"
	}
	return notification.ToastData{
		Level:   "info",
		Message: msg,
		Data:    map[string]interface{}{"product_id": n.ProductID},
	}
}

// ReportExportedNotice tells the ops channel a sales export landed in
// storage.
type ReportExportedNotice struct {
	URL   string
	Rows  int
	Range string
}

func (n *ReportExportedNotice) Via() []string { return []string{"slack"} }

func (n *ReportExportedNotice) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: "Sales report exported",
		Attachments: []notification.SlackAttachment{
			{
				Color: "good",
				Title: n.Range,
				Text:  fmt.Sprintf("%d rows — %s", n.Rows, n.URL),
			},
		},
	}
}
