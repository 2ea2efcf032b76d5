package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"vending-machine/models"
	"vending-machine/store"
)

// identityHeader carries the caller-supplied user id. It is trusted as
// the cart-ownership key; there is no further auth step.
const identityHeader = "x-id"

// ParamKind selects the parser for a mandatory query parameter. The
// set is closed: endpoints in this system only ever need strings and
// decimals.
type ParamKind int

const (
	ParamString ParamKind = iota
	ParamDecimal
)

// Outcome is the explicit result of a request: a status code and an
// optional JSON body. Validation failures travel as outcomes, never as
// panics or sentinel HTTP writes buried in helpers.
type Outcome struct {
	Status int
	Body   any
}

func OK(body any) Outcome   { return Outcome{Status: http.StatusOK, Body: body} }
func OKEmpty() Outcome      { return Outcome{Status: http.StatusOK} }
func Unauthorized() Outcome { return Outcome{Status: http.StatusUnauthorized} }

func BadRequest(msg string) Outcome {
	return Outcome{Status: http.StatusBadRequest, Body: msg}
}

// Params holds the parsed values of the declared mandatory parameters.
type Params struct {
	strings  map[string]string
	decimals map[string]decimal.Decimal
}

// String returns the parsed string parameter name.
func (p Params) String(name string) string { return p.strings[name] }

// Decimal returns the parsed decimal parameter name.
func (p Params) Decimal(name string) decimal.Decimal { return p.decimals[name] }

// Pipeline binds inbound requests to authenticated, parameter-checked
// cart-handler invocations. One Pipeline serves all endpoints; each
// request gets its own binding via ForRequest.
type Pipeline struct {
	carts *store.CartStore
}

func NewPipeline(carts *store.CartStore) *Pipeline {
	return &Pipeline{carts: carts}
}

type paramDecl struct {
	name string
	kind ParamKind
}

// RequestBinding is the per-request state of the pipeline: the request
// under examination plus the parameters declared mandatory for it.
type RequestBinding struct {
	pipeline *Pipeline
	request  *http.Request
	declared []paramDecl
}

// ForRequest starts a fresh binding for req with no declared
// parameters.
func (p *Pipeline) ForRequest(req *http.Request) *RequestBinding {
	return &RequestBinding{pipeline: p, request: req}
}

// Mandatory declares that the query parameter name must be present and
// parse as kind before the handler runs. Declarations accumulate and
// are checked in order.
func (b *RequestBinding) Mandatory(name string, kind ParamKind) *RequestBinding {
	b.declared = append(b.declared, paramDecl{name: name, kind: kind})
	return b
}

// HandlerFunc is an endpoint body: it receives the caller's cart and
// the parsed mandatory parameters, and returns the response outcome.
type HandlerFunc func(cart *models.Cart, params Params) Outcome

// Authenticated runs the request through the pipeline: identity header
// first, then declared parameters, then cart resolution, then fn. The
// first violated precondition short-circuits; fn never runs and no
// cart is created on any failure path.
func (b *RequestBinding) Authenticated(fn HandlerFunc) Outcome {
	userID, err := strconv.Atoi(b.request.Header.Get(identityHeader))
	if err != nil {
		return Unauthorized()
	}

	params := Params{
		strings:  map[string]string{},
		decimals: map[string]decimal.Decimal{},
	}
	query := b.request.URL.Query()
	for _, decl := range b.declared {
		raw := query.Get(decl.name)
		if raw == "" {
			return BadRequest(fmt.Sprintf("Query Param: %q must be specified.", decl.name))
		}
		switch decl.kind {
		case ParamDecimal:
			value, err := decimal.NewFromString(raw)
			if err != nil {
				return BadRequest(fmt.Sprintf("Query Param: %q is incorrectly formatted.", decl.name))
			}
			params.decimals[decl.name] = value
		default:
			params.strings[decl.name] = raw
		}
	}

	cart := b.pipeline.carts.AddOrRetrieveCart(userID)
	return fn(cart, params)
}
