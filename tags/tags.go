package tags

import "github.com/yohamta/donburi"

var (
	Body     = donburi.NewTag().SetName("Body")
	Platform = donburi.NewTag().SetName("Platform")
	Crate    = donburi.NewTag().SetName("Crate")
	Coin     = donburi.NewTag().SetName("Coin")
)
