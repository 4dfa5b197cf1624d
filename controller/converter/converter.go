package converter

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/daehee-lim/fxview/amount"
	"github.com/daehee-lim/fxview/model"
	"github.com/daehee-lim/fxview/session"
	"github.com/daehee-lim/fxview/storage"
)

const historyLimit = 20

func New(manager *session.Manager, quoteLog storage.QuoteLog) *Converter {
	return &Converter{manager: manager, quoteLog: quoteLog}
}

type Converter struct {
	manager  *session.Manager
	quoteLog storage.QuoteLog
}

type pairRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

type amountRequest struct {
	Amount string `json:"amount"`
}

// Currencies godoc
//
//	@Summary		List supported currencies
//	@Description	currency codes a pair may be built from
//	@Tags			converter
//	@Success		200	{array}	string
//	@Router			/currencies [get]
func (c *Converter) Currencies(ctx *fiber.Ctx) error {
	return ctx.JSON(model.SupportedCodes())
}

// CreateSession godoc
//
//	@Summary		Create a conversion session
//	@Description	opens a screen instance and fetches its first quote
//	@Tags			converter
//	@Param			pair	body	pairRequest	false	"Initial pair, defaults to USD/KRW"
//	@Success		201	{object}	session.View
//	@Failure		400	{object}	map[string]string
//	@Router			/sessions [post]
func (c *Converter) CreateSession(ctx *fiber.Ctx) error {
	pair := session.DefaultPair

	if len(ctx.Body()) > 0 {
		var req pairRequest
		if err := ctx.BodyParser(&req); err != nil {
			return errorJSON(ctx, fiber.StatusBadRequest, err)
		}

		p, err := model.NewPair(req.Source, req.Destination)
		if err != nil {
			return errorJSON(ctx, fiber.StatusBadRequest, err)
		}

		pair = p
	}

	view, err := c.manager.Create(pair)
	if err != nil {
		return errorJSON(ctx, fiber.StatusBadRequest, err)
	}

	log.Debug().Str("session", view.ID).Str("pair", view.Pair.String()).Msg("session created")

	return ctx.Status(fiber.StatusCreated).JSON(view)
}

// GetSession godoc
//
//	@Summary	Current screen snapshot
//	@Tags		converter
//	@Param		id	path	string	true	"Session ID"
//	@Success	200	{object}	session.View
//	@Failure	404	{object}	map[string]string
//	@Router		/sessions/{id} [get]
func (c *Converter) GetSession(ctx *fiber.Ctx) error {
	view, err := c.manager.Get(ctx.Params("id"))
	if err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	return ctx.JSON(view)
}

// SelectPair godoc
//
//	@Summary		Select the currency pair
//	@Description	resets the amount and result, fetches a fresh quote
//	@Tags			converter
//	@Param			id		path	string		true	"Session ID"
//	@Param			pair	body	pairRequest	true	"New pair"
//	@Success		200	{object}	session.View
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/sessions/{id}/pair [put]
func (c *Converter) SelectPair(ctx *fiber.Ctx) error {
	var req pairRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errorJSON(ctx, fiber.StatusBadRequest, err)
	}

	pair, err := model.NewPair(req.Source, req.Destination)
	if err != nil {
		return errorJSON(ctx, fiber.StatusBadRequest, err)
	}

	view, err := c.manager.SelectPair(ctx.Params("id"), pair)
	if err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	return ctx.JSON(view)
}

// SetAmount godoc
//
//	@Summary		Enter the amount to convert
//	@Description	input is filtered to digits and periods, never rejected
//	@Tags			converter
//	@Param			id		path	string			true	"Session ID"
//	@Param			amount	body	amountRequest	true	"Raw amount input"
//	@Success		200	{object}	session.View
//	@Failure		404	{object}	map[string]string
//	@Router			/sessions/{id}/amount [put]
func (c *Converter) SetAmount(ctx *fiber.Ctx) error {
	var req amountRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errorJSON(ctx, fiber.StatusBadRequest, err)
	}

	view, err := c.manager.SetAmount(ctx.Params("id"), req.Amount)
	if err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	return ctx.JSON(view)
}

// Convert godoc
//
//	@Summary		Compute the conversion result
//	@Description	amount x rate for the current quote
//	@Tags			converter
//	@Param			id	path	string	true	"Session ID"
//	@Success		200	{object}	session.View
//	@Failure		404	{object}	map[string]string
//	@Failure		409	{object}	map[string]string "no quote available yet"
//	@Failure		422	{object}	map[string]string "wrong value entered"
//	@Router			/sessions/{id}/convert [post]
func (c *Converter) Convert(ctx *fiber.Ctx) error {
	view, err := c.manager.Convert(ctx.Params("id"))
	if err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	return ctx.JSON(view)
}

// Retry godoc
//
//	@Summary		Retry a failed quote fetch
//	@Tags			converter
//	@Param			id	path	string	true	"Session ID"
//	@Success		200	{object}	session.View
//	@Failure		404	{object}	map[string]string
//	@Failure		409	{object}	map[string]string "session is not in a failed state"
//	@Router			/sessions/{id}/retry [post]
func (c *Converter) Retry(ctx *fiber.Ctx) error {
	view, err := c.manager.Retry(ctx.Params("id"))
	if err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	return ctx.JSON(view)
}

// History godoc
//
//	@Summary		Recently fetched quotes for a pair
//	@Tags			converter
//	@Param			source		query	string	true	"Source code"	example(USD)
//	@Param			destination	query	string	true	"Destination code"	example(KRW)
//	@Success		200	{array}		model.RateQuote
//	@Failure		400	{object}	map[string]string
//	@Router			/history [get]
func (c *Converter) History(ctx *fiber.Ctx) error {
	if c.quoteLog == nil {
		return errorJSON(ctx, fiber.StatusNotFound, errors.New("quote history is not enabled"))
	}

	pair, err := model.NewPair(ctx.Query("source"), ctx.Query("destination"))
	if err != nil {
		return errorJSON(ctx, fiber.StatusBadRequest, err)
	}

	quotes, err := c.quoteLog.Recent(ctx.Context(), pair, historyLimit)
	if err != nil {
		log.Error().Err(err).Str("pair", pair.String()).Msg("unable to load quote history")
		return errorJSON(ctx, fiber.StatusInternalServerError, err)
	}

	if quotes == nil {
		quotes = []model.RateQuote{}
	}

	return ctx.JSON(quotes)
}

func errorJSON(ctx *fiber.Ctx, status int, err error) error {
	return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// statusFor maps the session and validation error taxonomy
// onto HTTP statuses: unknown session 404, state preconditions
// 409, bad amounts 422
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, session.ErrQuoteNotReady), errors.Is(err, session.ErrNotRetryable):
		return fiber.StatusConflict
	case errors.Is(err, session.ErrAmountZero),
		errors.Is(err, session.ErrAmountTooLarge),
		errors.Is(err, amount.ErrNotNumeric):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrUnsupportedCode), errors.Is(err, model.ErrSamePair):
		return fiber.StatusBadRequest
	}

	return fiber.StatusInternalServerError
}
