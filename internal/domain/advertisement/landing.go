package advertisement

import (
	"context"
	"log/slog"

	"promoservice/internal/peer/product"
)

// ResolveLanding decides where a click on the ad leads.
//
// A landing URL always wins and no product lookup is made. Otherwise the
// target products are fetched; a failed lookup resolves to an empty product
// list, not an error. An ad with neither is ErrUnresolvableLanding.
// Resolution never records clicks.
func (s *Service) ResolveLanding(ctx context.Context, id string) (*Landing, error) {
	ad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if ad.HasLandingURL() {
		return &Landing{Type: LandingTypeURL, URL: *ad.LandingURL}, nil
	}

	if len(ad.TargetProductIDs) == 0 {
		return nil, ErrUnresolvableLanding
	}

	products, err := s.products.FetchByIDs(ctx, ad.TargetProductIDs)
	if err != nil {
		slog.WarnContext(ctx, "product lookup failed, serving empty landing",
			"peer", "product",
			"advertisement_id", ad.ID,
			"error", err,
		)
		products = []product.Product{}
	}

	return &Landing{Type: LandingTypeProducts, Products: products}, nil
}
