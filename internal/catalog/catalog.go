// Package catalog defines the closed set of selectable case options and
// the price lookup derived from them. All amounts are integer cents.
package catalog

// Option is one selectable value within an enumeration. Material and
// finish options carry a price increment on top of the base price.
type Option struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"priceCents"`
}

// BasePriceCents is the price of a case before material/finish increments.
const BasePriceCents int64 = 14_00

var Colors = []Option{
	{Label: "Black", Value: "black"},
	{Label: "Blue", Value: "blue"},
	{Label: "Rose", Value: "rose"},
}

var Models = []Option{
	{Label: "iPhone X", Value: "iphonex"},
	{Label: "iPhone 11", Value: "iphone11"},
	{Label: "iPhone 12", Value: "iphone12"},
	{Label: "iPhone 13", Value: "iphone14"},
	{Label: "iPhone 15", Value: "iphone15"},
}

var Materials = []Option{
	{Label: "Silicone", Value: "silicone"},
	{Label: "Polycarbonate", Value: "polycarbonate", Description: "Scratch resistant coating", PriceCents: 5_00},
}

var Finishes = []Option{
	{Label: "Smooth Finish", Value: "smooth"},
	{Label: "Textured Finish", Value: "textured", Description: "Soft grippy texture", PriceCents: 3_00},
}

// ComputeTotal returns the order total in cents for a material/finish pair.
func ComputeTotal(material, finish Option) int64 {
	return BasePriceCents + material.PriceCents + finish.PriceCents
}

func byValue(opts []Option, value string) (Option, bool) {
	for _, o := range opts {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

func ColorByValue(value string) (Option, bool)    { return byValue(Colors, value) }
func ModelByValue(value string) (Option, bool)    { return byValue(Models, value) }
func MaterialByValue(value string) (Option, bool) { return byValue(Materials, value) }
func FinishByValue(value string) (Option, bool)   { return byValue(Finishes, value) }
