package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"home-address/address"
	"home-address/phone"
)

// AddressService is the resource handler behind the home-address routes
type AddressService interface {
	Create(ctx context.Context, phone string, record address.Record) error
	Read(ctx context.Context, phone string) (address.Record, error)
	Update(ctx context.Context, phone string, record address.Record) error
	Delete(ctx context.Context, phone string) error
}

// AddressHandler validates requests and hands them to the AddressService
type AddressHandler struct {
	Service AddressService
	Phones  phone.Validator
}

// InitRoutes registers the home-address routes on g
func (h AddressHandler) InitRoutes(g *echo.Group) {
	g.POST("", h.create)
	g.GET("", h.read)
	g.PUT("", h.update)
	g.DELETE("", h.delete)
}

func (h AddressHandler) create(c echo.Context) error {
	phoneNumber, record, err := h.bindWrite(c)
	if err != nil {
		return err
	}

	if err = h.Service.Create(c.Request().Context(), phoneNumber, record); err != nil {
		return err
	}

	return c.NoContent(http.StatusCreated)
}

func (h AddressHandler) read(c echo.Context) error {
	phoneNumber, err := h.phone(c)
	if err != nil {
		return err
	}

	record, err := h.Service.Read(c.Request().Context(), phoneNumber)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, record)
}

func (h AddressHandler) update(c echo.Context) error {
	phoneNumber, record, err := h.bindWrite(c)
	if err != nil {
		return err
	}

	if err = h.Service.Update(c.Request().Context(), phoneNumber, record); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, nil)
}

func (h AddressHandler) delete(c echo.Context) error {
	phoneNumber, err := h.phone(c)
	if err != nil {
		return err
	}

	if err = h.Service.Delete(c.Request().Context(), phoneNumber); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// phone validates the phone query parameter
func (h AddressHandler) phone(c echo.Context) (string, error) {
	raw := c.QueryParam("phone")
	if raw == "" {
		return "", &address.ValidationError{Issues: []address.Issue{{
			Loc:  []string{"query", "phone"},
			Msg:  "field required",
			Type: address.IssueMissing,
		}}}
	}

	canonical, err := h.Phones.Validate(raw)
	if err != nil {
		return "", address.NewPhoneValidationError(err)
	}

	return canonical, nil
}

// bindWrite validates both the phone and the body, reporting the issues of both together.
// Errors other than validation failures are returned as they are.
func (h AddressHandler) bindWrite(c echo.Context) (string, address.Record, error) {
	var (
		issues   []address.Issue
		validErr *address.ValidationError
	)

	phoneNumber, err := h.phone(c)
	if err != nil {
		if !errors.As(err, &validErr) {
			return "", address.Record{}, err
		}
		issues = append(issues, validErr.Issues...)
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return "", address.Record{}, err
	}
	record, err := address.DecodeRecord(body)
	if err != nil {
		if !errors.As(err, &validErr) {
			return "", address.Record{}, err
		}
		issues = append(issues, validErr.Issues...)
	}

	if len(issues) > 0 {
		return "", address.Record{}, &address.ValidationError{Issues: issues}
	}

	return phoneNumber, record, nil
}
