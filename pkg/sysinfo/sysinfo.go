// Package sysinfo 提供宿主机运行状态采集（CPU、内存、磁盘、温度、运行时长、IP）
//
// 设计说明：
// 1. 基于gopsutil跨平台采集，单项失败不影响整体：失败项退化为零值或"N/A"
// 2. 所有字段一次性采集后返回快照结构，供 /api/system-stats 接口序列化
package sysinfo

import (
	"fmt"
	"log"
	"net"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/sensors"
)

// Stats 系统运行状态快照
type Stats struct {
	CPUTemp   string  `json:"cpu_temp"`   // CPU温度（摄氏度字符串，不可用时为"N/A"）
	CPUUsage  float64 `json:"cpu_usage"`  // CPU使用率（百分比）
	MemUsed   uint64  `json:"mem_used"`   // 已用内存（MB）
	MemTotal  uint64  `json:"mem_total"`  // 总内存（MB）
	DiskFree  float64 `json:"disk_free"`  // 根分区剩余空间（GB，保留两位小数）
	Uptime    string  `json:"uptime"`     // 开机时长（h:mm:ss格式）
	IPAddress string  `json:"ip_address"` // 对外网卡IP（不可用时为"N/A"）
}

// Collector 系统状态采集器
type Collector struct{}

// NewCollector 创建系统状态采集器
func NewCollector() *Collector {
	return &Collector{}
}

// Collect 采集全部系统状态
//
// 每一项独立采集，单项失败记录日志并使用兜底值，永不返回错误。
func (c *Collector) Collect() Stats {
	return Stats{
		CPUTemp:   c.cpuTemp(),
		CPUUsage:  c.cpuUsage(),
		MemUsed:   c.memUsedMB(),
		MemTotal:  c.memTotalMB(),
		DiskFree:  c.diskFreeGB(),
		Uptime:    c.uptime(),
		IPAddress: c.ipAddress(),
	}
}

// cpuTemp 读取CPU温度传感器
func (c *Collector) cpuTemp() string {
	temps, err := sensors.SensorsTemperatures()
	if err != nil || len(temps) == 0 {
		log.Printf("[sysinfo] 读取CPU温度失败: %v", err)
		return "N/A"
	}
	// 优先使用CPU相关传感器，否则取第一个
	for _, t := range temps {
		if t.SensorKey == "cpu_thermal" || t.SensorKey == "coretemp" || t.SensorKey == "k10temp" {
			return formatTemp(t.Temperature)
		}
	}
	return formatTemp(temps[0].Temperature)
}

func formatTemp(celsius float64) string {
	return fmt.Sprintf("%.1f", celsius)
}

// cpuUsage 采样0.5秒计算CPU使用率
func (c *Collector) cpuUsage() float64 {
	percents, err := cpu.Percent(500*time.Millisecond, false)
	if err != nil || len(percents) == 0 {
		log.Printf("[sysinfo] 读取CPU使用率失败: %v", err)
		return 0.0
	}
	return percents[0]
}

func (c *Collector) memUsedMB() uint64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Printf("[sysinfo] 读取内存信息失败: %v", err)
		return 0
	}
	return vm.Used / (1024 * 1024)
}

func (c *Collector) memTotalMB() uint64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0
	}
	return vm.Total / (1024 * 1024)
}

// diskFreeGB 根分区剩余空间（GB）
func (c *Collector) diskFreeGB() float64 {
	usage, err := disk.Usage("/")
	if err != nil {
		log.Printf("[sysinfo] 读取磁盘信息失败: %v", err)
		return 0.0
	}
	gb := float64(usage.Free) / (1024 * 1024 * 1024)
	// 保留两位小数
	return float64(int64(gb*100+0.5)) / 100
}

// uptime 开机时长，格式化为 h:mm:ss
func (c *Collector) uptime() string {
	seconds, err := host.Uptime()
	if err != nil {
		log.Printf("[sysinfo] 读取开机时长失败: %v", err)
		return "N/A"
	}
	return FormatUptime(seconds)
}

// ipAddress 通过UDP拨号探测对外网卡IP（不产生真实流量）
func (c *Collector) ipAddress() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		log.Printf("[sysinfo] 探测本机IP失败: %v", err)
		return "N/A"
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "N/A"
	}
	return addr.IP.String()
}

// FormatUptime 将秒数格式化为 h:mm:ss（超过一天时为 d day(s), h:mm:ss）
func FormatUptime(seconds uint64) string {
	d := time.Duration(seconds) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60

	if days == 1 {
		return fmt.Sprintf("1 day, %d:%02d:%02d", hours, minutes, secs)
	}
	if days > 1 {
		return fmt.Sprintf("%d days, %d:%02d:%02d", days, hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
}
