package card

import "fmt"

// Color 定义牌的颜色
type Color int

// Value 定义牌面值
type Value int

const (
	Red Color = iota
	Yellow
	Green
	Blue
	Black // 万能牌的占位颜色，永远不会成为场上生效的颜色
)

const (
	Zero Value = iota
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Skip     // 跳过
	Reverse  // 转向
	DrawTwo  // +2
	Wild     // 变色
	WildFour // 变色 +4
	Back     // 牌背，仅用于客户端的暗牌展示，引擎逻辑中不出现
)

// colorNames 颜色字符串映射表
var colorNames = map[Color]string{
	Red:    "红",
	Yellow: "黄",
	Green:  "绿",
	Blue:   "蓝",
	Black:  "黑",
}

// valueNames 功能牌字符串映射表
var valueNames = map[Value]string{
	Skip:     "跳过",
	Reverse:  "转向",
	DrawTwo:  "+2",
	Wild:     "变色",
	WildFour: "变色+4",
	Back:     "牌背",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// IsValid 检查颜色是否为可宣告的生效颜色（黑色不可被宣告）
func (c Color) IsValid() bool {
	return c >= Red && c <= Blue
}

func (v Value) String() string {
	if name, ok := valueNames[v]; ok {
		return name
	}
	if v.IsNumber() {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("Value(%d)", int(v))
}

// IsNumber 是否为数字牌
func (v Value) IsNumber() bool {
	return v >= Zero && v <= Nine
}

// IsWild 是否为万能牌（变色 / 变色+4）
func (v Value) IsWild() bool {
	return v == Wild || v == WildFour
}

// Card 定义一张 Uno 牌，按值比较，同样的牌可以出现多张
type Card struct {
	Color Color `json:"color"`
	Value Value `json:"value"`
}

func (c Card) String() string {
	if c.Color == Black {
		return c.Value.String()
	}
	return c.Color.String() + c.Value.String()
}

// CanBePlayed 判断这张牌能否压在弃牌堆顶的 top 上
// current 是当前生效颜色，当堆顶是已变色的万能牌时与其牌面颜色不同
func (c Card) CanBePlayed(top Card, current Color) bool {
	if c.Color == top.Color || c.Value == top.Value {
		return true
	}
	if c.Color == Black {
		return true
	}
	// 堆顶是万能牌时，按玩家宣告的生效颜色匹配
	return top.Color == Black && c.Color == current
}

// Points 返回这张牌在结算时计入的罚分
func (c Card) Points() int {
	switch c.Value {
	case Wild, WildFour:
		return 50
	case Skip, Reverse, DrawTwo:
		return 20
	default:
		return int(c.Value)
	}
}
