package models

// Vendor is the read-only projection of a vendor record this service consumes.
// Only the region is of interest here; it is denormalized onto provisional
// appointments at reservation time.
type Vendor struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
	RegionID string `bson:"region_id,omitempty" json:"regionId,omitempty"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
}
