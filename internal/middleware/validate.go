package middleware

import (
	"bytes"
	"encoding/json"

	"github.com/IleanaLopez91/dashboardPERN/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys used to hand data from the validation middleware to the
// input-error middleware and the handlers.
const (
	LocalsValidationErrors = "validationErrors"
	LocalsBody             = "requestBody"
)

// Validate decodes the JSON request body once and evaluates every rule
// chain against it and the route parameters. All failures from all
// chains accumulate; the decision to short-circuit belongs to
// HandleInputErrors. Chains run in the order they are declared on the
// route, params before body.
func Validate(chains ...*validation.Chain) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := map[string]any{}
		raw := c.Body()
		if len(bytes.TrimSpace(raw)) > 0 {
			dec := json.NewDecoder(bytes.NewReader(raw))
			dec.UseNumber()
			if err := dec.Decode(&body); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"errors": []validation.FieldError{{
						Type:     "body",
						Msg:      "Cuerpo de la peticion no valido",
						Location: "body",
					}},
				})
			}
		}

		var errs []validation.FieldError
		for _, chain := range chains {
			var v validation.Value
			switch chain.Location() {
			case "params":
				s := c.Params(chain.Field())
				v = validation.Value{Raw: s, Present: s != ""}
			default:
				rawValue, ok := body[chain.Field()]
				v = validation.Value{Raw: rawValue, Present: ok}
			}
			errs = append(errs, chain.Run(v)...)
		}

		c.Locals(LocalsValidationErrors, errs)
		c.Locals(LocalsBody, body)
		return c.Next()
	}
}

// HandleInputErrors inspects the errors accumulated by Validate. When
// any are present the request is answered with 400 and the itemized
// error list; the resource handler never runs.
func HandleInputErrors(c *fiber.Ctx) error {
	errs, _ := c.Locals(LocalsValidationErrors).([]validation.FieldError)
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": errs,
		})
	}
	return c.Next()
}
