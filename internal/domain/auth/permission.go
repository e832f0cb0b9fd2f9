package auth

// Permission is an "app_label.codename" string checked by the authorizer.
type Permission string

const (
	PermViewAsset   Permission = "app.view_asset"
	PermAddAsset    Permission = "app.add_asset"
	PermChangeAsset Permission = "app.change_asset"
)
