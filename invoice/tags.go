package invoice

import "fmt"

// Tag describes a known tagged field.
type Tag struct {
	Value  int
	Letter byte
	Name   string
}

func (t Tag) String() string {
	return fmt.Sprintf("%s(%c)", t.Name, t.Letter)
}

type tags []Tag

// Lookup returns the tag with the given value.
func (ts tags) Lookup(v int) (t Tag, ok bool) {
	for _, t := range ts {
		if t.Value == v {
			return t, true
		}
	}

	return t, false
}

var (
	TagPaymentHash             = Tag{1, 'p', "payment_hash"}
	TagRouteHint               = Tag{3, 'r', "route_hint"}
	TagFeatures                = Tag{5, '9', "features"}
	TagExpiry                  = Tag{6, 'x', "expiry"}
	TagFallbackAddress         = Tag{9, 'f', "fallback_address"}
	TagDescription             = Tag{13, 'd', "description"}
	TagPaymentSecret           = Tag{16, 's', "payment_secret"}
	TagPayeeNode               = Tag{19, 'n', "payee_node"}
	TagDescriptionHash         = Tag{23, 'h', "description_hash"}
	TagMinFinalCLTVExpiryDelta = Tag{24, 'c', "min_final_cltv_expiry_delta"}
	TagMetadata                = Tag{27, 'm', "metadata"}

	Tags = tags{
		TagPaymentHash,
		TagRouteHint,
		TagFeatures,
		TagExpiry,
		TagFallbackAddress,
		TagDescription,
		TagPaymentSecret,
		TagPayeeNode,
		TagDescriptionHash,
		TagMinFinalCLTVExpiryDelta,
		TagMetadata,
	}
)

// LookupTag returns the known tag with the given value.
func LookupTag(v int) (Tag, bool) {
	return Tags.Lookup(v)
}
