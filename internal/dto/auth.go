package dto

// ValidatePINRequest PIN 校验请求
type ValidatePINRequest struct {
	PIN string `json:"pin" binding:"required,max=64"`
}

// ValidatePINResponse PIN 校验结果；配置了 jwt_secret 时附带访问令牌
type ValidatePINResponse struct {
	Valid       bool   `json:"valid"`
	AccessToken string `json:"access_token,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"` // 秒
}
