package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/liuwen/bookmall/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 连接池参数由配置决定（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 2. debug模式打印SQL，生产环境静默
// 3. AutoMigrate只建表加列，生产环境应使用版本化迁移脚本
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("数据库连接成功")

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
}

// UserModel GORM用户模型
// infrastructure层的数据模型带GORM tag，domain实体不带，Repository负责转换
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	Nickname  string    `gorm:"size:50;not null;comment:昵称"`
	Role      string    `gorm:"size:20;not null;default:user;comment:角色(user/admin)"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格以分为单位存int64
// 2. 软删除用Active标记而非gorm.DeletedAt：
//    下架图书仍可被历史订单、后台查询到，只是对外不可见
// 3. 同名同作者唯一索引防止重复上架
// 4. Genres以逗号分隔字符串存储，仓储层负责切片转换
type BookModel struct {
	ID              uint      `gorm:"primaryKey"`
	Title           string    `gorm:"uniqueIndex:idx_title_author;size:200;not null;comment:书名"`
	Author          string    `gorm:"uniqueIndex:idx_title_author;size:100;not null;comment:作者"`
	Description     string    `gorm:"type:text;comment:图书描述"`
	Publisher       string    `gorm:"size:100;comment:出版社"`
	Genres          string    `gorm:"size:255;comment:分类标签(逗号分隔)"`
	PublicationYear int       `gorm:"comment:出版年份"`
	Language        string    `gorm:"size:30;comment:语种"`
	Price           int64     `gorm:"index:idx_list;not null;comment:价格(分)"`
	Stock           int       `gorm:"default:0;comment:库存数量"`
	CoverURL        string    `gorm:"size:500;comment:封面图片URL"`
	AverageRating   float64   `gorm:"default:0;comment:平均评分"`
	RatingCount     int       `gorm:"default:0;comment:评分人数"`
	Featured        bool      `gorm:"default:false;comment:推荐位"`
	Active          bool      `gorm:"index;default:true;comment:上架状态(软删除标记)"`
	CreatedAt       time.Time `gorm:"index:idx_list;comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// OrderModel GORM订单模型
// 设计说明:
// 1. 与OrderItemModel一对多,收货地址/支付回执内嵌平铺成列
// 2. OrderNo唯一索引(业务主键)
// 3. Status直接存字符串,便于排查与索引
type OrderModel struct {
	ID      uint   `gorm:"primaryKey"`
	OrderNo string `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID  uint   `gorm:"index;not null;comment:买家用户ID"`

	ShipAddress    string `gorm:"size:255;not null;comment:收货地址"`
	ShipCity       string `gorm:"size:100;not null;comment:城市"`
	ShipState      string `gorm:"size:100;not null;comment:省/州"`
	ShipCountry    string `gorm:"size:100;not null;comment:国家"`
	ShipPostalCode string `gorm:"size:20;not null;comment:邮编"`

	PaymentMethod string `gorm:"size:30;not null;comment:支付方式"`

	PayTransactionID string `gorm:"size:100;comment:支付交易号"`
	PayStatus        string `gorm:"size:30;comment:支付网关状态"`
	PayUpdateTime    string `gorm:"size:50;comment:支付网关更新时间"`
	PayEmailAddress  string `gorm:"size:100;comment:付款人邮箱"`

	ItemsPrice     int64  `gorm:"not null;comment:明细小计(分)"`
	TaxAmount      int64  `gorm:"not null;default:0;comment:税费(分)"`
	ShippingAmount int64  `gorm:"not null;default:0;comment:运费(分)"`
	TotalAmount    int64  `gorm:"not null;comment:总金额(分)"`
	Status         string `gorm:"index;size:20;not null;default:pending;comment:订单状态"`

	IsPaid      bool       `gorm:"default:false;comment:是否已支付"`
	PaidAt      *time.Time `gorm:"comment:支付时间"`
	IsDelivered bool       `gorm:"default:false;comment:是否已送达"`
	DeliveredAt *time.Time `gorm:"comment:送达时间"`

	Items     []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time        `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// Title/Author/CoverURL/Price是下单时刻的快照,商家改动不影响历史订单
type OrderItemModel struct {
	ID       uint   `gorm:"primaryKey"`
	OrderID  uint   `gorm:"index;not null;comment:订单ID"`
	BookID   uint   `gorm:"index;not null;comment:图书ID"`
	Title    string `gorm:"size:200;not null;comment:书名快照"`
	Author   string `gorm:"size:100;comment:作者快照"`
	CoverURL string `gorm:"size:500;comment:封面快照"`
	Price    int64  `gorm:"not null;comment:下单时单价(分)"`
	Quantity int    `gorm:"not null;comment:购买数量"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}
