package handlers

import (
	"fmt"

	"github.com/go-faster/jx"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ConfirmationRequest is the order-confirmation request body
type ConfirmationRequest struct {
	OrderID       string `json:"order_id" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required"`
}

// ExportRequest is the generate-order-csv request body
type ExportRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// decodeFields reads a JSON object and returns the listed fields as strings.
// Falsy values (null, false, 0 and "") leave the field empty. Any other
// value is kept: strings as is, everything else as its raw JSON text, so
// it reaches the lookup and fails there. A body that is not a JSON object
// is an error.
func decodeFields(body []byte, names ...string) (map[string]string, error) {
	d := jx.DecodeBytes(body)
	if tt := d.Next(); tt != jx.Object {
		if tt == jx.Invalid {
			return nil, fmt.Errorf("unexpected end of JSON input")
		}
		return nil, fmt.Errorf("request body must be a JSON object, got %v", tt)
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	fields := make(map[string]string, len(names))
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		name := string(key)
		if !wanted[name] {
			return d.Skip()
		}

		switch d.Next() {
		case jx.String:
			s, err := d.Str()
			if err != nil {
				return err
			}
			fields[name] = s
		case jx.Number:
			n, err := d.Num()
			if err != nil {
				return err
			}
			if isZero(string(n)) {
				delete(fields, name)
			} else {
				fields[name] = string(n)
			}
		case jx.Bool:
			b, err := d.Bool()
			if err != nil {
				return err
			}
			if b {
				fields[name] = "true"
			} else {
				delete(fields, name)
			}
		case jx.Object, jx.Array:
			raw, err := d.Raw()
			if err != nil {
				return err
			}
			fields[name] = raw.String()
		default:
			if err := d.Skip(); err != nil {
				return err
			}
			delete(fields, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fields, nil
}

func isZero(num string) bool {
	for _, c := range num {
		switch c {
		case '0', '.', '-', '+':
		case 'e', 'E':
			return true
		default:
			return false
		}
	}
	return true
}

func parseConfirmationRequest(body []byte) (*ConfirmationRequest, error) {
	fields, err := decodeFields(body, "order_id", "customer_email")
	if err != nil {
		return nil, err
	}
	return &ConfirmationRequest{
		OrderID:       fields["order_id"],
		CustomerEmail: fields["customer_email"],
	}, nil
}

func parseExportRequest(body []byte) (*ExportRequest, error) {
	fields, err := decodeFields(body, "order_id")
	if err != nil {
		return nil, err
	}
	return &ExportRequest{OrderID: fields["order_id"]}, nil
}
