package schemas

// PassKeyCredWhenCreating struct conatins the passkey credential received from the browser when creating a credential
type PassKeyCredWhenCreating struct {
	ClientExtensionResults  interface{} `json:"clientExtensionResults"`
	AuthenticatorAttachment interface{} `json:"authenticatorAttachment"`
	ID                      string      `json:"id"`
	Type                    string      `json:"type" validate:"required,oneof=public-key"`
	RawID                   string      `json:"rawId" validate:"required"`
	Response                struct {
		AttestationObject string        `json:"attestationObject" validate:"required"`
		ClientDataJSON    string        `json:"clientDataJSON" validate:"required"`
		Transports        []interface{} `json:"transports"`
	} `json:"response"`
}

// PassKeyCredWhenLogginIn struct contians the passkey credential received from the browser while logging in
type PassKeyCredWhenLogginIn struct {
	ClientExtensionResults  interface{} `json:"clientExtensionResults"`
	AuthenticatorAttachment interface{} `json:"authenticatorAttachment"`
	ID                      string      `json:"id"`
	Type                    string      `json:"type" validate:"required,oneof=public-key"`
	RawID                   string      `json:"rawId" validate:"required"`
	Response                struct {
		AuthenticatorData string `json:"authenticatorData" validate:"required"`
		ClientDataJSON    string `json:"clientDataJSON" validate:"required"`
		Signature         string `json:"signature" validate:"required"`
		UserHandle        string `json:"userHandle"`
	} `json:"response"`
}
