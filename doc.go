// Package cloudwatch is a client for the query-string API of a remote monitoring
// service: ListMetrics, GetMetricStatistics, DeleteAlarms and PutMetricAlarm.
//
// Every call is checked against a static per-operation field table before anything
// is sent, then flattened into the indexed wire format the service expects:
//
//	Statistics.member.1=Average
//	Dimensions.member.1.Name=InstanceId
//	Dimensions.member.1.Value=i-1234
//
// Validation stops at the first violated rule, checked in the order presence, type,
// time range, enumeration. A failed validation never reaches the transport.
//
// Basic usage:
//
//	config := cloudwatch.DefaultConfig()
//	config.Signer = signer
//
//	client, err := cloudwatch.NewClient(config)
//	if err != nil {
//	  log.Fatal(err)
//	}
//	defer client.Close()
//
//	resp, err := client.GetMetricStatistics(ctx, cloudwatch.GetMetricStatisticsOptions{
//	  MeasureName: "CPUUtilization",
//	  StartTime:   time.Now().Add(-time.Hour),
//	  EndTime:     time.Now(),
//	  Statistics:  []cloudwatch.Statistic{cloudwatch.Average, cloudwatch.Maximum},
//	  Dimensions:  []cloudwatch.Dimension{{Name: "InstanceId", Value: "i-1234"}},
//	})
//
// Request signing and decoding of the response body are left to the caller.
package cloudwatch
