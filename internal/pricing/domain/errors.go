package domain

import "errors"

// 错误分类：
// ErrValidation 表示入参违反领域约束，在任何数值计算开始前抛出，不可重试；
// ErrNumerical 表示数值过程失败（求根无解、方差退化等），调用方可调整参数后重试。
var (
	ErrValidation = errors.New("invalid parameter")
	ErrNumerical  = errors.New("numerical failure")
)

// WarnDegenerateControlVariate 控制变量方差为零时回退到原始估计量的告警文案
const WarnDegenerateControlVariate = "control variate variance is zero; fell back to plain estimator"
