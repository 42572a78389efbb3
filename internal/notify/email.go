package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	html "github.com/gofiber/template/html/v2"
)

// EmailNotifier sends the price-drop mail with an HTML body rendered from
// web/templates/price_alert.html. Wired only when SMTP_ADDR is set.
type EmailNotifier struct {
	engine *html.Engine
	addr   string // host:port of the SMTP relay
	from   string
}

func NewEmailNotifier(templatesDir, addr, from string) (*EmailNotifier, error) {
	if addr == "" || from == "" {
		return nil, nil
	}
	engine := html.New(templatesDir, ".html")
	if err := engine.Load(); err != nil {
		return nil, err
	}
	return &EmailNotifier{engine: engine, addr: addr, from: from}, nil
}

func (n *EmailNotifier) NotifyPriceDrop(_ context.Context, d PriceDrop) error {
	var body bytes.Buffer
	if err := n.engine.Render(&body, "price_alert", map[string]any{
		"ProductName":  d.ProductName,
		"CurrentPrice": fmt.Sprintf("%.2f", d.CurrentPrice),
		"TargetPrice":  fmt.Sprintf("%.2f", d.TargetPrice),
	}); err != nil {
		return err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: ShopNest Alerts <%s>\r\n", n.from)
	fmt.Fprintf(&msg, "To: %s\r\n", d.Email)
	fmt.Fprintf(&msg, "Subject: Price Alert: %s is now %.2f\r\n", d.ProductName, d.CurrentPrice)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.Write(body.Bytes())

	return smtp.SendMail(n.addr, nil, n.from, []string{d.Email}, msg.Bytes())
}
