package validation

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

// requestKey stores the parsed request in the Fiber context for the
// handler behind the gate.
const requestKey = "validationRequest"

// Gate evaluates every rule in declaration order and collects all their
// violations. A non-empty set short-circuits the request with a 400 and the
// list of violations; the handler never runs. An empty set stores the
// parsed request in the context and passes control through.
func Gate(rules ...Rule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := &Request{
			Params: c.AllParams(),
			Body:   map[string]json.RawMessage{},
		}
		if body := c.Body(); len(body) > 0 {
			// A malformed body is treated as empty so that every field
			// rule reports its own violation.
			_ = json.Unmarshal(body, &req.Body)
		}

		var violations []Violation
		for _, rule := range rules {
			if v := rule(req); v != nil {
				violations = append(violations, *v)
			}
		}
		if len(violations) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errores": violations,
			})
		}
		c.Locals(requestKey, req)
		return c.Next()
	}
}

// FromCtx returns the request the gate parsed and validated. Handlers read
// body fields through it instead of re-binding the body, which keeps them
// independent of the Content-Type header. Returns an empty request when no
// gate ran on the route.
func FromCtx(c *fiber.Ctx) *Request {
	if req, ok := c.Locals(requestKey).(*Request); ok {
		return req
	}
	return &Request{
		Params: map[string]string{},
		Body:   map[string]json.RawMessage{},
	}
}
