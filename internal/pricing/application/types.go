package application

// 定价命令对象：HTTP/CLI 等薄协作层把原始输入装配成命令后调用应用服务，
// 数值校验全部下沉到领域层。

// EuropeanCommand 欧式期权闭式定价命令
type EuropeanCommand struct {
	Spot       float64
	Strike     float64
	Rate       float64
	Repo       float64
	Maturity   float64
	Volatility float64
	OptionType string
}

// ImpliedVolCommand 隐含波动率反解命令
type ImpliedVolCommand struct {
	Spot       float64
	Strike     float64
	Rate       float64
	Repo       float64
	Maturity   float64
	Premium    float64
	OptionType string
}

// AmericanCommand 美式期权二叉树定价命令
type AmericanCommand struct {
	Spot       float64
	Strike     float64
	Rate       float64
	Maturity   float64
	Volatility float64
	Steps      int
	OptionType string
}

// GeometricAsianCommand 几何亚式闭式定价命令
type GeometricAsianCommand struct {
	Spot         float64
	Strike       float64
	Rate         float64
	Maturity     float64
	Volatility   float64
	Observations int
	OptionType   string
}

// ArithmeticAsianCommand 算术亚式蒙特卡洛定价命令
type ArithmeticAsianCommand struct {
	Spot           float64
	Strike         float64
	Rate           float64
	Maturity       float64
	Volatility     float64
	Observations   int
	Paths          int
	ControlVariate string
	Seed           uint64
	OptionType     string
}

// GeometricBasketCommand 几何篮子闭式定价命令
type GeometricBasketCommand struct {
	Spot1       float64
	Spot2       float64
	Strike      float64
	Rate        float64
	Maturity    float64
	Volatility1 float64
	Volatility2 float64
	Correlation float64
	OptionType  string
}

// ArithmeticBasketCommand 算术篮子蒙特卡洛定价命令
type ArithmeticBasketCommand struct {
	Spot1          float64
	Spot2          float64
	Strike         float64
	Rate           float64
	Maturity       float64
	Volatility1    float64
	Volatility2    float64
	Correlation    float64
	Paths          int
	ControlVariate string
	Seed           uint64
	OptionType     string
}

// KIKOPutCommand 敲入敲出看跌期权拟蒙特卡洛定价命令
type KIKOPutCommand struct {
	Spot         float64
	Strike       float64
	Rate         float64
	Maturity     float64
	Volatility   float64
	LowerBarrier float64
	UpperBarrier float64
	Rebate       float64
	Observations int
	Paths        int
	Seed         uint64
	WithDelta    bool
}
