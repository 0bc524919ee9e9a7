package backoffice_client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/listing"
	"realty-backoffice/internal/wire"

	"github.com/go-resty/resty/v2"
)

var (
	_ listing.Lister[domain.Offer]  = (*OfferLister)(nil)
	_ listing.Lister[domain.Demand] = (*DemandLister)(nil)
)

// OfferLister - серверный вариант listing.Lister для предложений
type OfferLister struct{ c *Client }

func NewOfferLister(c *Client) *OfferLister { return &OfferLister{c: c} }

func (l *OfferLister) List(ctx context.Context, q listing.Query) (listing.Result[domain.Offer], error) {
	var page wire.PageDTO[wire.OfferDTO]
	err := l.c.do(ctx, http.MethodGet, "/offres/paginated", nil, &page, func(r *resty.Request) {
		r.SetQueryParamsFromValues(wire.EncodeQuery(domain.EntityOffer, q))
	})
	if err != nil {
		return listing.Result[domain.Offer]{}, err
	}
	return wire.PageResult(page, wire.OfferDTO.Offer), nil
}

// DemandLister - серверный вариант listing.Lister для заявок
type DemandLister struct{ c *Client }

func NewDemandLister(c *Client) *DemandLister { return &DemandLister{c: c} }

func (l *DemandLister) List(ctx context.Context, q listing.Query) (listing.Result[domain.Demand], error) {
	var page wire.PageDTO[wire.DemandDTO]
	err := l.c.do(ctx, http.MethodGet, "/demandes/paginated", nil, &page, func(r *resty.Request) {
		r.SetQueryParamsFromValues(wire.EncodeQuery(domain.EntityDemand, q))
	})
	if err != nil {
		return listing.Result[domain.Demand]{}, err
	}
	return wire.PageResult(page, wire.DemandDTO.Demand), nil
}

// FetchAllOffers загружает весь список для listing.LoadedLister
func (c *Client) FetchAllOffers(ctx context.Context) ([]domain.Offer, error) {
	var dtos []wire.OfferDTO
	if err := c.do(ctx, http.MethodGet, "/offres/all", nil, &dtos); err != nil {
		return nil, err
	}
	return wire.Convert(dtos, wire.OfferDTO.Offer), nil
}

func (c *Client) FetchAllDemands(ctx context.Context) ([]domain.Demand, error) {
	var dtos []wire.DemandDTO
	if err := c.do(ctx, http.MethodGet, "/demandes/all", nil, &dtos); err != nil {
		return nil, err
	}
	return wire.Convert(dtos, wire.DemandDTO.Demand), nil
}

func (c *Client) GetOffer(ctx context.Context, id int64) (*domain.Offer, error) {
	var dto wire.OfferDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/offres/%d", id), nil, &dto); err != nil {
		return nil, err
	}
	o := dto.Offer()
	return &o, nil
}

// CreateOffer проверяет черновик до отправки: некорректная форма на сервер не уходит
func (c *Client) CreateOffer(ctx context.Context, draft domain.OfferDraft) (*domain.Offer, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var dto wire.OfferDTO
	if err := c.do(ctx, http.MethodPost, "/offres", wire.NewOfferDraftDTO(draft), &dto); err != nil {
		return nil, err
	}
	o := dto.Offer()
	return &o, nil
}

func (c *Client) UpdateOffer(ctx context.Context, id int64, draft domain.OfferDraft) (*domain.Offer, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var dto wire.OfferDTO
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/offres/%d", id), wire.NewOfferDraftDTO(draft), &dto); err != nil {
		return nil, err
	}
	o := dto.Offer()
	return &o, nil
}

func (c *Client) ChangeOfferStatus(ctx context.Context, id int64, status domain.OfferStatus) (*domain.Offer, error) {
	var dto wire.OfferDTO
	body := wire.StatusPatchDTO{StatutOffre: wire.OfferStatusCode(status)}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/offres/%d/status", id), body, &dto); err != nil {
		return nil, err
	}
	o := dto.Offer()
	return &o, nil
}

func (c *Client) DeleteOffer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/offres/%d", id), nil, nil)
}

func (c *Client) GetDemand(ctx context.Context, id int64) (*domain.Demand, error) {
	var dto wire.DemandDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/demandes/%d", id), nil, &dto); err != nil {
		return nil, err
	}
	d := dto.Demand()
	return &d, nil
}

func (c *Client) CreateDemand(ctx context.Context, draft domain.DemandDraft) (*domain.Demand, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var dto wire.DemandDTO
	if err := c.do(ctx, http.MethodPost, "/demandes", wire.NewDemandDraftDTO(draft), &dto); err != nil {
		return nil, err
	}
	d := dto.Demand()
	return &d, nil
}

func (c *Client) UpdateDemand(ctx context.Context, id int64, draft domain.DemandDraft) (*domain.Demand, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var dto wire.DemandDTO
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/demandes/%d", id), wire.NewDemandDraftDTO(draft), &dto); err != nil {
		return nil, err
	}
	d := dto.Demand()
	return &d, nil
}

func (c *Client) DeleteDemand(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/demandes/%d", id), nil, nil)
}

// UploadImage загружает изображение и возвращает его публичный URL
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var dto wire.ImageDTO
	err := c.do(ctx, http.MethodPost, "/images/upload", nil, &dto, func(req *resty.Request) {
		req.SetFileReader("image", filename, r)
	})
	if err != nil {
		return "", err
	}
	return dto.ImageURL, nil
}
