package contractgen

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"carrent/models"
	"carrent/services/storage"
)

// Renderer produces a durable URL to a rental agreement document. Invoked
// once per new rental.
type Renderer interface {
	Render(ctx context.Context, rental *models.Rental, user *models.User, car *models.Car) (string, error)
}

var agreementTmpl = template.Must(template.New("agreement").Parse(`CAR RENTAL AGREEMENT

Rental reference: {{.Rental.ID}}
Date issued:      {{.IssuedAt}}

RENTER
  Name:  {{.User.Name}}
  Email: {{.User.Email}}

VEHICLE
  {{.Car.Brand}} {{.Car.Model}} ({{.Car.Plate}})
  Transmission: {{.Car.Transmission}}, seats: {{.Car.Seater}}

RENTAL PERIOD
  Pickup:  {{.Rental.StartDate.Format "2006-01-02"}} {{.Rental.PickupTime}}
  Return:  {{.Rental.EndDate.Format "2006-01-02"}} {{.Rental.ReturnTime}}

TOTAL COST: {{printf "%.2f" .Rental.TotalCost}}

The renter agrees to return the vehicle in the condition received and to the
terms of service attached to this agreement. This agreement becomes binding
once signed electronically via the signing link sent to the renter.
`))

// DefaultRenderer renders a plain-text agreement and stores it.
type DefaultRenderer struct {
	Storage storage.StorageService
}

func (r *DefaultRenderer) Render(ctx context.Context, rental *models.Rental, user *models.User, car *models.Car) (string, error) {
	var buf bytes.Buffer
	err := agreementTmpl.Execute(&buf, map[string]interface{}{
		"Rental":   rental,
		"User":     user,
		"Car":      car,
		"IssuedAt": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("contractgen: render agreement: %w", err)
	}

	name := fmt.Sprintf("agreement-%d-%d", rental.ID, time.Now().Unix())
	url, err := r.Storage.UploadDocument(ctx, name, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("contractgen: store agreement: %w", err)
	}
	return url, nil
}
