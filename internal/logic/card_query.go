package logic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZcashUsersGroup/zdabe/internal/model"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// 分页默认值与上限
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// SortColumn 允许排序的列
type SortColumn string

const (
	SortByLastUpdated   SortColumn = "last_updated"
	SortByPriority      SortColumn = "priority"
	SortByPercentFunded SortColumn = "percent_funded"
	SortByDate          SortColumn = "date"
)

// SortDirection 排序方向
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// CardQueryInput 原始查询参数, 均为未经校验的字符串
type CardQueryInput struct {
	Page     string
	PerPage  string
	SortBy   string
	SortDir  string
	Priority string
	Status   string
	Stage    string
	Tags     string
}

// CardQuery 规范化后的卡片查询计划
type CardQuery struct {
	Page     int
	PerPage  int
	SortBy   SortColumn
	SortDir  SortDirection
	Priority string
	Status   string
	Stage    string
	Tags     []string
}

// ParseCardQuery 将原始查询参数规范化为查询计划
// 非法输入一律静默回退到默认值, 不返回错误
func ParseCardQuery(in CardQueryInput) CardQuery {
	q := CardQuery{
		Page:     DefaultPage,
		PerPage:  DefaultPerPage,
		SortBy:   SortByLastUpdated,
		SortDir:  SortDesc,
		Priority: strings.TrimSpace(in.Priority),
		Status:   strings.TrimSpace(in.Status),
		Stage:    strings.TrimSpace(in.Stage),
	}

	if page, err := strconv.Atoi(strings.TrimSpace(in.Page)); err == nil && page > 0 {
		q.Page = page
	}

	if perPage, err := strconv.Atoi(strings.TrimSpace(in.PerPage)); err == nil && perPage > 0 {
		if perPage > MaxPerPage {
			perPage = MaxPerPage
		}
		q.PerPage = perPage
	}

	switch col := SortColumn(strings.TrimSpace(in.SortBy)); col {
	case SortByLastUpdated, SortByPriority, SortByPercentFunded, SortByDate:
		q.SortBy = col
	}

	switch dir := SortDirection(strings.TrimSpace(in.SortDir)); dir {
	case SortAsc, SortDesc:
		q.SortDir = dir
	}

	for _, tag := range strings.Split(in.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			q.Tags = append(q.Tags, tag)
		}
	}

	return q
}

// Offset 计算分页偏移量
func (q CardQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// OrderClause 生成排序子句, 列与方向均来自枚举值
func (q CardQuery) OrderClause() string {
	return fmt.Sprintf("%s %s", q.SortBy, q.SortDir)
}

// Apply 在查询上追加可见性与过滤条件, 全部走参数绑定
func (q CardQuery) Apply(db *gorm.DB) *gorm.DB {
	db = db.Where("visibility = ?", model.VisibilityPublic)
	if q.Priority != "" {
		db = db.Where("priority = ?", q.Priority)
	}
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.Stage != "" {
		db = db.Where("stage = ?", q.Stage)
	}
	if len(q.Tags) > 0 {
		db = db.Where("tags && ?", pq.StringArray(q.Tags))
	}
	return db
}
