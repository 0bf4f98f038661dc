package mailer

import (
	"html/template"
	"strings"
)

const orderReceivedHTML = `<html>
<body style="font-family: sans-serif; color: #18181b;">
  <h1>Thank you for your order!</h1>
  <p>We've received your order and it is now being prepared.</p>
  <p>Order number: <strong>{{.OrderID}}</strong></p>
  <p>Order date: {{.OrderDate}}</p>
  <h2>Shipping to</h2>
  <p>
    {{.ShippingAddress.Name}}<br/>
    {{.ShippingAddress.Street}}<br/>
    {{.ShippingAddress.City}}, {{.ShippingAddress.State}} {{.ShippingAddress.PostalCode}}<br/>
    {{.ShippingAddress.Country}}
  </p>
  <p>You will receive a shipping confirmation once your case is on its way.</p>
</body>
</html>`

var orderReceivedTmpl = template.Must(template.New("order-received").Parse(orderReceivedHTML))

// RenderOrderReceived produces the HTML body for the confirmation email.
func RenderOrderReceived(data OrderReceived) (string, error) {
	var sb strings.Builder
	if err := orderReceivedTmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
