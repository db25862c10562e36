package dto

// ProfileUpdateRequest 资料更新请求（姓名与年龄）
type ProfileUpdateRequest struct {
	Name string `json:"name" binding:"required,max=60"`
	Age  int    `json:"age" binding:"required,gte=18,lte=120"`
}

// PasswordChangeRequest 修改密码请求
type PasswordChangeRequest struct {
	OldPassword  string `json:"old_password" binding:"required"`
	NewPassword1 string `json:"new_password1" binding:"required,password"`
	NewPassword2 string `json:"new_password2" binding:"required,eqfield=NewPassword1"`
}
