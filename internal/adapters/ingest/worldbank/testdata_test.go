package worldbank

// a trimmed response in the shape the v2 API returns for SP.DYN.TFRT.IN
const sampleOK = `[
  {"page":1,"pages":1,"per_page":500,"total":6,"sourceid":"2","lastupdated":"2022-07-01"},
  [
    {"indicator":{"id":"SP.DYN.TFRT.IN","value":"Fertility rate, total (births per woman)"},
     "country":{"id":"DE","value":"Germany"},"countryiso3code":"DEU","date":"2018","value":1.57,"unit":"","obs_status":"","decimal":1},
    {"indicator":{"id":"SP.DYN.TFRT.IN","value":"Fertility rate, total (births per woman)"},
     "country":{"id":"DE","value":"Germany"},"countryiso3code":"DEU","date":"1990","value":1.45,"unit":"","obs_status":"","decimal":1},
    {"indicator":{"id":"SP.DYN.TFRT.IN","value":"Fertility rate, total (births per woman)"},
     "country":{"id":"FR","value":"France"},"countryiso3code":"FRA","date":"2018","value":null,"unit":"","obs_status":"","decimal":1},
    {"indicator":{"id":"SP.DYN.TFRT.IN","value":"Fertility rate, total (births per woman)"},
     "country":{"id":"FR","value":"France"},"countryiso3code":"FRA","date":"1990","value":"1.77","unit":"","obs_status":"","decimal":1},
    {"indicator":{"id":"SP.DYN.TFRT.IN","value":"Fertility rate, total (births per woman)"},
     "country":{"id":"IT","value":"Italy"},"countryiso3code":"ITA","date":"1990","unit":"","obs_status":"","decimal":1},
    {"indicator":{"id":"SP.DYN.TFRT.IN","value":"Fertility rate, total (births per woman)"},
     "country":{"id":"IT","value":"Italy"},"countryiso3code":"ITA","date":"2018","value":{"odd":true},"unit":"","obs_status":"","decimal":1}
  ]
]`

const sampleSkips = `[
  {"page":1,"pages":3,"per_page":"2","total":"6","lastupdated":"2022-07-01"},
  [
    {"country":{"id":"DE","value":"Germany"},"date":"2000","value":1.38},
    {"country":{"id":"","value":""},"date":"2000","value":1.1},
    {"country":{"id":"AT","value":"Austria"},"date":"MRV","value":1.2},
    {"country":{"id":"AT","value":"Austria"},"date":"","value":1.2},
    {"country":{"id":"AT","value":"Austria"},"date":2001,"value":1.33}
  ]
]`

// an unused field of the wrong type is ignored; a country sent as a plain
// string does not fit Record and is skipped
const sampleMalformed = `[
  {"page":1,"pages":1,"per_page":500,"total":3,"lastupdated":"2022-07-01"},
  [
    {"country":{"id":"DE","value":"Germany"},"date":"1990","value":1.45,"decimal":1},
    {"country":{"id":"DE","value":"Germany"},"date":"1991","value":1.33,"decimal":1.5},
    {"country":"France","date":"1990","value":1.77}
  ]
]`

const sampleAPIError = `[{"message":[{"id":"175","key":"Invalid format","value":"The indicator was not found. It may have been deleted or archived."}]}]`

const sampleNoRecords = `[{"page":0,"pages":0,"per_page":500,"total":0,"lastupdated":"2022-07-01"},null]`
