package dto

// PublishBookRequest HTTP上架请求
// (title, author)组合在库中唯一,重复上架返回40901
type PublishBookRequest struct {
	Title           string   `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author          string   `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	Description     string   `json:"description" binding:"max=5000" example:"一本关于Go语言的实战书籍"`
	Publisher       string   `json:"publisher" binding:"max=100" example:"人民邮电出版社"`
	Genres          []string `json:"genres" binding:"omitempty,max=10" example:"编程,计算机"`
	PublicationYear int      `json:"publication_year" binding:"omitempty,min=1000,max=2100" example:"2017"`
	Language        string   `json:"language" binding:"max=50" example:"中文"`
	Price           int64    `json:"price" binding:"required,min=1,max=9999999" example:"5900"` // 价格(分),59.00元
	Stock           int      `json:"stock" binding:"min=0" example:"100"`
	CoverURL        string   `json:"cover_url" binding:"omitempty,url,max=500" example:"https://example.com/cover.jpg"`
}

// UpdateBookRequest HTTP更新请求,省略的字段不修改
type UpdateBookRequest struct {
	Title           string   `json:"title" binding:"omitempty,max=200"`
	Author          string   `json:"author" binding:"omitempty,max=100"`
	Description     string   `json:"description" binding:"omitempty,max=5000"`
	Publisher       string   `json:"publisher" binding:"omitempty,max=100"`
	Genres          []string `json:"genres" binding:"omitempty,max=10"`
	PublicationYear int      `json:"publication_year" binding:"omitempty,min=1000,max=2100"`
	Language        string   `json:"language" binding:"omitempty,max=50"`
	CoverURL        string   `json:"cover_url" binding:"omitempty,url,max=500"`
	Price           int64    `json:"price" binding:"omitempty,min=1,max=9999999"` // 0 = 不改价
	Stock           *int     `json:"stock" binding:"omitempty,min=0"`             // null = 不覆盖库存
}

// ListBooksRequest HTTP图书列表请求(query string)
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"Go"`
	Genre    string `form:"genre" binding:"omitempty,max=50" example:"编程"`
	Featured bool   `form:"featured" example:"false"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc created_at_desc" example:"created_at_desc"`
}
