package utils

import (
	"bytes"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type OrderConfirmationItem struct {
	Name     string
	Quantity int
	Subtotal string
}

type OrderConfirmationData struct {
	OrderNumber  string
	CustomerName string
	Items        []OrderConfirmationItem
	Subtotal     string
	Discount     string
	Total        string
	ShippingTo   string
	DetailLink   string
}

// SendOrderConfirmationEmail renders and sends the confirmation mail.
// Runs async so checkout response time is not tied to SMTP.
func SendOrderConfirmationEmail(to string, data OrderConfirmationData, qrPNG []byte) {
	go func() {
		tmplPath := "templates/order_confirmation.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("failed to load email template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render email template: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Order confirmation #"+data.OrderNumber)
		m.SetBody("text/html", body.String())

		if len(qrPNG) > 0 {
			m.Embed("order_qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(qrPNG)
				return err
			}), gomail.SetHeader(map[string][]string{
				"Content-Type":        {"image/png"},
				"Content-ID":          {"<order_qr_code>"},
				"Content-Disposition": {"inline"},
			}))
		}

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send confirmation email: %v", err)
		}
	}()
}
