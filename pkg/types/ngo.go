package types

// NGO is a registered relief organization account. The JSON tags match the
// persisted ngousers.json layout, so the password hash travels with the
// record; use Public before handing an NGO to any caller.
type NGO struct {
	Fullname     string `json:"fullname" form:"fullname"`
	Organization string `json:"organization" form:"organization"`
	Email        string `json:"email" form:"email"`
	Username     string `json:"username" form:"username"`
	Password     string `json:"password" form:"-"`
}

// PublicNGO is an NGO without the stored credential.
type PublicNGO struct {
	Fullname     string `json:"fullname"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	Username     string `json:"username"`
}

func (n NGO) Public() PublicNGO {
	return PublicNGO{
		Fullname:     n.Fullname,
		Organization: n.Organization,
		Email:        n.Email,
		Username:     n.Username,
	}
}
