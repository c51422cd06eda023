package book

import (
	"github.com/liuwen/bookmall/internal/domain/book"
)

// BookView 图书详情视图DTO
type BookView struct {
	ID              uint     `json:"id"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Description     string   `json:"description"`
	Publisher       string   `json:"publisher"`
	Genres          []string `json:"genres"`
	PublicationYear int      `json:"publication_year"`
	Language        string   `json:"language"`
	Price           int64    `json:"price"` // 分
	Stock           int      `json:"stock"`
	CoverURL        string   `json:"cover_url"`
	AverageRating   float64  `json:"average_rating"`
	RatingCount     int      `json:"rating_count"`
	Featured        bool     `json:"featured"`
	CreatedAt       string   `json:"created_at"`
}

// BookListItem 列表项DTO,不含description以减少传输量
type BookListItem struct {
	ID            uint     `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Publisher     string   `json:"publisher"`
	Genres        []string `json:"genres"`
	Price         int64    `json:"price"` // 分
	Stock         int      `json:"stock"`
	CoverURL      string   `json:"cover_url"`
	AverageRating float64  `json:"average_rating"`
	Featured      bool     `json:"featured"`
	CreatedAt     string   `json:"created_at"`
}

func toBookView(b *book.Book) *BookView {
	return &BookView{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Description:     b.Description,
		Publisher:       b.Publisher,
		Genres:          b.Genres,
		PublicationYear: b.PublicationYear,
		Language:        b.Language,
		Price:           b.Price,
		Stock:           b.Stock,
		CoverURL:        b.CoverURL,
		AverageRating:   b.AverageRating,
		RatingCount:     b.RatingCount,
		Featured:        b.Featured,
		CreatedAt:       b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toBookListItem(b *book.Book) BookListItem {
	return BookListItem{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Publisher:     b.Publisher,
		Genres:        b.Genres,
		Price:         b.Price,
		Stock:         b.Stock,
		CoverURL:      b.CoverURL,
		AverageRating: b.AverageRating,
		Featured:      b.Featured,
		CreatedAt:     b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
