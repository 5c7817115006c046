package ebay

import (
	"strconv"
	"time"
)

// The Finding API's JSON rendering wraps every field in a single-element
// array and keys the payload by operation name. These types mirror that
// shape and stay inside this package; toResult flattens them.

type envelope struct {
	Completed []wireResponse `json:"findCompletedItemsResponse"`
	Advanced  []wireResponse `json:"findItemsAdvancedResponse"`
}

type wireResponse struct {
	Ack          []string           `json:"ack"`
	ErrorMessage []wireErrorMessage `json:"errorMessage"`
	SearchResult []wireSearchResult `json:"searchResult"`
	Pagination   []wirePagination   `json:"paginationOutput"`
}

type wireErrorMessage struct {
	Error []wireError `json:"error"`
}

type wireError struct {
	Message []string `json:"message"`
}

type wireSearchResult struct {
	Count string     `json:"@count"`
	Items []wireItem `json:"item"`
}

type wirePagination struct {
	TotalEntries []string `json:"totalEntries"`
}

type wireItem struct {
	ItemID        []string            `json:"itemId"`
	Title         []string            `json:"title"`
	GalleryURL    []string            `json:"galleryURL"`
	ViewItemURL   []string            `json:"viewItemURL"`
	SellingStatus []wireSellingStatus `json:"sellingStatus"`
	ListingInfo   []wireListingInfo   `json:"listingInfo"`
}

type wireSellingStatus struct {
	CurrentPrice []wirePrice `json:"currentPrice"`
}

type wirePrice struct {
	CurrencyID string `json:"@currencyId"`
	Value      string `json:"__value__"`
}

type wireListingInfo struct {
	EndTime []string `json:"endTime"`
}

func first(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return ss[0]
}

func (r *wireResponse) ack() string { return first(r.Ack) }

func (r *wireResponse) failureMessage() string {
	if len(r.ErrorMessage) == 0 || len(r.ErrorMessage[0].Error) == 0 {
		return "no error detail"
	}
	return first(r.ErrorMessage[0].Error[0].Message)
}

// toResult flattens the wire response. Items missing a parsable price
// are dropped rather than failing the whole page.
func (r *wireResponse) toResult() *SearchResult {
	out := &SearchResult{}

	if len(r.Pagination) > 0 {
		out.Total, _ = strconv.Atoi(first(r.Pagination[0].TotalEntries))
	}

	if len(r.SearchResult) == 0 {
		return out
	}
	for _, wi := range r.SearchResult[0].Items {
		item, ok := wi.toItem()
		if !ok {
			continue
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func (wi *wireItem) toItem() (Item, bool) {
	if len(wi.SellingStatus) == 0 || len(wi.SellingStatus[0].CurrentPrice) == 0 {
		return Item{}, false
	}
	wp := wi.SellingStatus[0].CurrentPrice[0]
	price, err := strconv.ParseFloat(wp.Value, 64)
	if err != nil {
		return Item{}, false
	}

	item := Item{
		ID:       first(wi.ItemID),
		Title:    first(wi.Title),
		Price:    price,
		Currency: wp.CurrencyID,
		URL:      first(wi.ViewItemURL),
		ImageURL: first(wi.GalleryURL),
	}
	if len(wi.ListingInfo) > 0 {
		if t, err := time.Parse(time.RFC3339, first(wi.ListingInfo[0].EndTime)); err == nil {
			item.EndTime = t
		}
	}
	return item, true
}
